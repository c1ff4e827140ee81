package postgrest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"medical-data-entry/internal/platform/httpclient"
	"medical-data-entry/internal/ports/records"
)

var (
	ErrNotConfigured = errors.New("postgrest client not configured")
)

// Config del cliente PostgREST (Supabase expone /rest/v1/<tabla>).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa records.DefaultTable.
	Table string

	Timeout time.Duration

	// Opcional, para tests.
	Transport http.RoundTripper
}

type Client struct {
	apiKey string
	table  string
	http   *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	apiKey := strings.TrimSpace(cfg.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}

	table := strings.TrimSpace(cfg.Table)
	if table == "" {
		table = records.DefaultTable
	}

	hc, err := httpclient.New(cfg.Timeout,
		httpclient.WithBaseURL(baseURL),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, err
	}

	return &Client{apiKey: apiKey, table: table, http: hc}, nil
}

func (c *Client) path() string {
	return "/rest/v1/" + c.table
}

// Insert hace un POST por registro. 2xx es éxito; cualquier otro status
// devuelve *records.RemoteError con el cuerpo de la respuesta.
func (c *Client) Insert(ctx context.Context, rec records.WireRecord) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   c.path(),
		Headers: map[string]string{
			"apikey":        c.apiKey,
			"Authorization": "Bearer " + c.apiKey,
			"Prefer":        "return=minimal",
		},
		Body: rec,
	})
	if err == nil {
		return nil
	}

	var herr *httpclient.HTTPError
	if errors.As(err, &herr) {
		return &records.RemoteError{StatusCode: herr.StatusCode, Body: herr.Body}
	}
	return err
}

// Close no hace nada: el transporte HTTP no mantiene estado por sink.
func (c *Client) Close() error { return nil }
