package postgres

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrInvalidDSN = errors.New("invalid postgres dsn")
)

// DefaultUser se usa cuando la DSN no trae usuario (Supabase: "postgres").
const DefaultUser = "postgres"

// Open abre un pool chico a Postgres usando pgx (database/sql).
// El pool vive lo que dura un envío.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(1 * time.Minute)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// DSN completa la password con la API key cuando la URL no trae una.
func DSN(endpoint, apiKey string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil || u.Host == "" {
		return "", ErrInvalidDSN
	}

	switch {
	case u.User == nil:
		u.User = url.UserPassword(DefaultUser, apiKey)
	default:
		if _, ok := u.User.Password(); !ok {
			name := u.User.Username()
			if name == "" {
				name = DefaultUser
			}
			u.User = url.UserPassword(name, apiKey)
		}
	}
	return u.String(), nil
}
