package adapters

import (
	"database/sql"
	"math"

	"github.com/de-tools/booking-atlas/pkg/models/api"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/models/store"
)

// MapStoreAggregateRowToDomain coerces one scanned row into its domain
// shape: missing numerics become zero, currency totals are rounded to
// whole units, and the derived rates are recomputed so the invariants
// hold regardless of what the query returned.
func MapStoreAggregateRowToDomain(row store.AggregateRow) domain.AggregateRow {
	totalRooms := row.TotalRooms.Int64
	confirmed := row.ConfirmedRooms.Int64
	cancelled := row.CancelledRooms.Int64

	purchase := roundCurrency(row.TotalPurchase)
	profit := roundCurrency(row.TotalProfit)

	var cancellationRate, profitRate float64
	if totalRooms > 0 {
		cancellationRate = roundRate(float64(cancelled) / float64(totalRooms) * 100)
	}
	if purchase > 0 {
		profitRate = roundRate(float64(profit) / float64(purchase) * 100)
	}

	return domain.AggregateRow{
		BookingDate:      row.BookingDate,
		PropertyID:       row.PropertyID,
		PropertyName:     row.PropertyName,
		ChannelName:      row.ChannelName.String,
		BookingCount:     row.BookingCount.Int64,
		TotalRooms:       totalRooms,
		ConfirmedRooms:   confirmed,
		CancelledRooms:   cancelled,
		CancellationRate: cancellationRate,
		TotalDeposit:     roundCurrency(row.TotalDeposit),
		TotalPurchase:    purchase,
		TotalProfit:      profit,
		ProfitRate:       profitRate,
	}
}

// MapStoreSummaryRowToDomain zero-fills the summary scalars.
func MapStoreSummaryRowToDomain(row store.SummaryRow) domain.SummaryStats {
	return domain.SummaryStats{
		TotalBookings: row.TotalBookings.Int64,
		TotalRevenue:  row.TotalRevenue.Float64,
		PropertyCount: row.PropertyCount.Int64,
		ActiveDays:    row.ActiveDays.Int64,
	}
}

func MapSummaryDomainToApi(s domain.SummaryStats) api.Summary {
	return api.Summary{
		TotalBookings: s.TotalBookings,
		TotalRevenue:  s.TotalRevenue,
		PropertyCount: s.PropertyCount,
		ActiveDays:    s.ActiveDays,
	}
}

func MapTableDomainToApi(t domain.Table) api.Table {
	return api.Table{
		Columns: t.Columns,
		Rows:    t.Rows,
	}
}

func roundCurrency(n sql.NullFloat64) int64 {
	return int64(math.Round(n.Float64))
}

func roundRate(v float64) float64 {
	return math.Round(v*10) / 10
}
