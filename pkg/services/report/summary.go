package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/adapters"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/store/bookingdb"
)

// Calculator computes the whole-period summary scalars with the same
// failure policy as the fetcher: on any backend error the zero-valued
// stats come back with failed=true.
type Calculator interface {
	Summarize(ctx context.Context, f domain.Filter) (stats domain.SummaryStats, failed bool)
}

type calculator struct {
	store   bookingdb.BookingStore
	timeout time.Duration
}

func NewCalculator(store bookingdb.BookingStore, timeout time.Duration) Calculator {
	return &calculator{store: store, timeout: timeout}
}

func (c *calculator) Summarize(ctx context.Context, filter domain.Filter) (domain.SummaryStats, bool) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Time("start_date", filter.StartDate).
		Time("end_date", filter.EndDate).
		Str("date_type", string(filter.DateType)).
		Int("property_count", len(filter.PropertyIDs)).
		Msg("computing booking summary")

	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	row, err := c.store.Summary(queryCtx, BuildSummaryQuery(filter))
	if err != nil {
		logger.Error().
			Err(err).
			Time("start_date", filter.StartDate).
			Time("end_date", filter.EndDate).
			Int("property_count", len(filter.PropertyIDs)).
			Msg("booking summary query failed")
		return domain.SummaryStats{}, true
	}

	stats := adapters.MapStoreSummaryRowToDomain(row)
	logger.Info().
		Int64("total_bookings", stats.TotalBookings).
		Int64("active_days", stats.ActiveDays).
		Msg("booking summary computed")
	return stats, false
}
