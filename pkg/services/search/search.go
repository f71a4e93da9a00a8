package search

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/adapters"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/store/bookingdb"
)

const (
	// MinTermLength is the shortest trimmed term that triggers a query.
	MinTermLength = 2

	DefaultLimit = 50
	MaxLimit     = 200
)

// Service answers property searches. Terms shorter than MinTermLength
// after trimming return an empty result without touching the store, and
// store failures fail closed to an empty result with one logged error.
type Service interface {
	Search(ctx context.Context, term string, limit int) []domain.Property
	Lookup(ctx context.Context, id int64) (*domain.Property, error)
}

type service struct {
	store   bookingdb.PropertyStore
	timeout time.Duration
}

func NewService(store bookingdb.PropertyStore, timeout time.Duration) Service {
	return &service{store: store, timeout: timeout}
}

func (s *service) Search(ctx context.Context, term string, limit int) []domain.Property {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < MinTermLength {
		return []domain.Property{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.store.Search(queryCtx, term, limit)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("term", term).
			Msg("property search failed")
		return []domain.Property{}
	}

	results := make([]domain.Property, 0, len(rows))
	for _, row := range rows {
		results = append(results, adapters.MapStorePropertyRowToDomain(row))
	}
	return results
}

// Lookup fetches one property by id for selection validation. Unlike
// Search it propagates store errors: the caller is about to mutate state
// and needs to distinguish "absent" from "unavailable".
func (s *service) Lookup(ctx context.Context, id int64) (*domain.Property, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row, err := s.store.Get(queryCtx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	p := adapters.MapStorePropertyRowToDomain(*row)
	return &p, nil
}
