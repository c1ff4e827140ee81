package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medical-data-entry/internal/adapters/records/postgres"
	"medical-data-entry/internal/adapters/records/postgrest"
	port "medical-data-entry/internal/ports/records"
)

var (
	ErrUnsupportedEndpoint = errors.New("unsupported endpoint")
)

// Factory elige el sink según el esquema del endpoint:
// http/https => PostgREST, postgres/postgresql => INSERT directo.
type Factory struct {
	timeout   time.Duration
	table     string
	transport http.RoundTripper
	openDB    func(ctx context.Context, dsn string) (*sql.DB, error)
}

type Option func(*Factory)

func WithTimeout(d time.Duration) Option {
	return func(f *Factory) { f.timeout = d }
}

// WithTable aplica a ambos sinks (ruta PostgREST y tabla del INSERT).
func WithTable(table string) Option {
	return func(f *Factory) { f.table = strings.TrimSpace(table) }
}

func WithTransport(tr http.RoundTripper) Option {
	return func(f *Factory) { f.transport = tr }
}

// WithDBOpener reemplaza postgres.Open (tests).
func WithDBOpener(open func(ctx context.Context, dsn string) (*sql.DB, error)) Option {
	return func(f *Factory) {
		if open != nil {
			f.openDB = open
		}
	}
}

func NewFactory(opts ...Option) *Factory {
	f := &Factory{openDB: postgres.Open}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Open(ctx context.Context, t port.Target) (port.Sink, error) {
	u, err := url.Parse(strings.TrimSpace(t.EndpointURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedEndpoint, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		c, err := postgrest.NewClient(postgrest.Config{
			BaseURL:   t.EndpointURL,
			APIKey:    t.APIKey,
			Table:     f.table,
			Timeout:   f.timeout,
			Transport: f.transport,
		})
		if err != nil {
			return nil, err
		}
		return c, nil

	case "postgres", "postgresql":
		dsn, err := postgres.DSN(t.EndpointURL, t.APIKey)
		if err != nil {
			return nil, err
		}
		db, err := f.openDB(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return postgres.NewSink(db, f.table), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEndpoint, u.Scheme)
	}
}
