package bookingdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/models/store"
)

// BookingStore executes built aggregate queries. It is the opaque
// `execute(query, params) -> rows` capability the report services depend
// on; it never builds SQL itself.
type BookingStore interface {
	Aggregates(ctx context.Context, q domain.Query) ([]store.AggregateRow, error)
	Summary(ctx context.Context, q domain.Query) (store.SummaryRow, error)
}

type bookingStore struct {
	db *sqlx.DB
}

func NewBookingStore(db *sqlx.DB) (BookingStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &bookingStore{db: db}, nil
}

func (b *bookingStore) Aggregates(ctx context.Context, q domain.Query) ([]store.AggregateRow, error) {
	rows, err := b.db.QueryxContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query booking aggregates: %w", err)
	}
	defer rows.Close()

	records := make([]store.AggregateRow, 0)
	for rows.Next() {
		var rec store.AggregateRow
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregate rows: %w", err)
	}
	return records, nil
}

func (b *bookingStore) Summary(ctx context.Context, q domain.Query) (store.SummaryRow, error) {
	var row store.SummaryRow
	err := b.db.GetContext(ctx, &row, q.SQL, q.Args...)
	if err == sql.ErrNoRows {
		// An aggregate over zero bookings still yields one row; no rows at
		// all means the summary defaults stay zero.
		return store.SummaryRow{}, nil
	}
	if err != nil {
		return store.SummaryRow{}, fmt.Errorf("query booking summary: %w", err)
	}
	return row, nil
}
