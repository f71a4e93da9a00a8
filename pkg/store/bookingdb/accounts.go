package bookingdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/de-tools/booking-atlas/pkg/models/store"
)

// AccountStore looks up staff accounts for authentication.
type AccountStore interface {
	Get(ctx context.Context, adminID string) (*store.AccountRow, error)
}

type accountStore struct {
	db *sqlx.DB
}

func NewAccountStore(db *sqlx.DB) (AccountStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &accountStore{db: db}, nil
}

const accountQuery = `
	SELECT admin_id, password, status
	FROM staff_accounts
	WHERE admin_id = $1`

func (a *accountStore) Get(ctx context.Context, adminID string) (*store.AccountRow, error) {
	var row store.AccountRow
	err := a.db.GetContext(ctx, &row, accountQuery, adminID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &row, nil
}
