package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/adapters"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/store/bookingdb"
)

// Fetcher executes the detail aggregate for a validated filter. Backend
// failures never escape: they are logged with query context and come back
// as an empty row set with failed=true, which callers must present as a
// failure rather than a zero-match result.
type Fetcher interface {
	Fetch(ctx context.Context, f domain.Filter) (rows []domain.AggregateRow, failed bool)
}

type fetcher struct {
	store   bookingdb.BookingStore
	lookup  *refdata.Lookup
	timeout time.Duration
}

func NewFetcher(store bookingdb.BookingStore, lookup *refdata.Lookup, timeout time.Duration) Fetcher {
	return &fetcher{store: store, lookup: lookup, timeout: timeout}
}

func (f *fetcher) Fetch(ctx context.Context, filter domain.Filter) ([]domain.AggregateRow, bool) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Time("start_date", filter.StartDate).
		Time("end_date", filter.EndDate).
		Str("date_type", string(filter.DateType)).
		Int("property_count", len(filter.PropertyIDs)).
		Msg("fetching booking aggregates")

	queryCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	records, err := f.store.Aggregates(queryCtx, BuildStatisticsQuery(filter))
	if err != nil {
		logger.Error().
			Err(err).
			Time("start_date", filter.StartDate).
			Time("end_date", filter.EndDate).
			Int("property_count", len(filter.PropertyIDs)).
			Msg("booking aggregate query failed")
		return []domain.AggregateRow{}, true
	}

	rows := make([]domain.AggregateRow, 0, len(records))
	for _, rec := range records {
		row := adapters.MapStoreAggregateRowToDomain(rec)
		if row.ChannelName == "" && rec.ChannelID.Valid {
			if name, ok := f.lookup.ChannelName(rec.ChannelID.Int64); ok {
				row.ChannelName = name
			}
		}
		if row.ChannelName == "" {
			row.ChannelName = "Unknown"
		}
		rows = append(rows, row)
	}

	logger.Info().Int("row_count", len(rows)).Msg("booking aggregates fetched")
	return rows, false
}
