package bookingdb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Settings configure the read-only connection to the booking store.
// QueryTimeout is the sole cancellation mechanism: each query runs under a
// context deadline and a timed-out call fails like any other backend error.
type Settings struct {
	DSN          string
	MaxOpenConns int
	QueryTimeout time.Duration
}

const (
	defaultMaxOpenConns = 8
	defaultQueryTimeout = 30 * time.Second
)

// NewDB opens and pings the booking database.
func NewDB(ctx context.Context, settings Settings) (*sqlx.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("booking store DSN is required")
	}

	db, err := sqlx.Open("postgres", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open booking store: %w", err)
	}

	if settings.MaxOpenConns <= 0 {
		settings.MaxOpenConns = defaultMaxOpenConns
	}
	db.SetMaxOpenConns(settings.MaxOpenConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping booking store: %w", err)
	}

	return db, nil
}

// QueryTimeout resolves the configured timeout, falling back to the default.
func (s Settings) Timeout() time.Duration {
	if s.QueryTimeout <= 0 {
		return defaultQueryTimeout
	}
	return s.QueryTimeout
}
