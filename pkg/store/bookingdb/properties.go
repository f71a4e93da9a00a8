package bookingdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/booking-atlas/pkg/models/store"
)

// PropertyStore serves the property search and single-property lookup.
type PropertyStore interface {
	Search(ctx context.Context, term string, limit int) ([]store.PropertyRow, error)
	Get(ctx context.Context, id int64) (*store.PropertyRow, error)
}

type propertyStore struct {
	db *sqlx.DB
}

func NewPropertyStore(db *sqlx.DB) (PropertyStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &propertyStore{db: db}, nil
}

// searchQuery surfaces properties with bookings in the recent activity
// window (purchase within 180 days, or checkout within 180 days either
// side of today) plus listings registered in the last 90 days. Matching is
// a substring test on name and code, and on the name with all whitespace
// removed so "grandhotel" finds "Grand Hotel".
const searchQuery = `
	SELECT
		p.id,
		p.code,
		p.name,
		BOOL_OR(b.id IS NOT NULL) AS has_recent_activity
	FROM properties p
	LEFT JOIN bookings b ON b.property_id = p.id
		AND (
			b.created_at >= CURRENT_DATE - INTERVAL '180 days'
			OR (
				b.checkin_date >= CURRENT_DATE - INTERVAL '180 days'
				AND b.checkin_date <= CURRENT_DATE + INTERVAL '180 days'
			)
		)
	WHERE (
		p.name ILIKE $1
		OR p.code ILIKE $1
		OR REPLACE(p.name, ' ', '') ILIKE $2
	)
	AND (
		b.id IS NOT NULL
		OR p.registered_at >= CURRENT_DATE - INTERVAL '90 days'
	)
	GROUP BY p.id, p.code, p.name
	ORDER BY has_recent_activity DESC, p.name ASC, p.id DESC
	LIMIT $3`

func (p *propertyStore) Search(ctx context.Context, term string, limit int) ([]store.PropertyRow, error) {
	pattern := "%" + term + "%"
	compact := "%" + strings.ReplaceAll(term, " ", "") + "%"

	rows, err := p.db.QueryxContext(ctx, searchQuery, pattern, compact, limit)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	defer rows.Close()

	results := make([]store.PropertyRow, 0)
	for rows.Next() {
		var row store.PropertyRow
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate property rows: %w", err)
	}
	return results, nil
}

const getQuery = `
	SELECT id, code, name, FALSE AS has_recent_activity
	FROM properties
	WHERE id = $1`

func (p *propertyStore) Get(ctx context.Context, id int64) (*store.PropertyRow, error) {
	var row store.PropertyRow
	err := p.db.GetContext(ctx, &row, getQuery, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get property %d: %w", id, err)
	}
	return &row, nil
}
