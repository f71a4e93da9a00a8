package domain

import "time"

// AggregateRow is one (date, property, channel) group produced by a single
// query execution. Rows are read-only snapshots; rates are percentages
// rounded to one decimal, currency totals are whole units.
type AggregateRow struct {
	BookingDate      time.Time
	PropertyID       int64
	PropertyName     string
	ChannelName      string
	BookingCount     int64
	TotalRooms       int64
	ConfirmedRooms   int64
	CancelledRooms   int64
	CancellationRate float64
	TotalDeposit     int64
	TotalPurchase    int64
	TotalProfit      int64
	ProfitRate       float64
}

// SummaryStats are whole-period scalars computed by a query independent of
// the detail rows. The two queries may observe different data; that
// discrepancy is accepted, not reconciled.
type SummaryStats struct {
	TotalBookings int64
	TotalRevenue  float64
	PropertyCount int64
	ActiveDays    int64
}

// Query is a parameterized read-only statement built by the query builder
// and handed to the store as-is. Args are always bound parameters; no
// filter value is ever interpolated into the SQL text.
type Query struct {
	SQL  string
	Args []any
}

// Table is the presentation form of a row set: display labels in fixed
// order and pre-formatted cell strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ProjectionMode selects between the truncated on-screen table and the
// full export table.
type ProjectionMode int

const (
	ProjectPreview ProjectionMode = iota
	ProjectExport
)

// PreviewRowLimit is how many rows the on-screen table shows; the full
// set is only available through export.
const PreviewRowLimit = 10

// ReportData is the outcome of one report run. Failed distinguishes a
// backend failure (empty rows plus a user-facing failure message) from a
// legitimate zero-match result.
type ReportData struct {
	Rows    []AggregateRow
	Summary SummaryStats
	Failed  bool
}

// ExportDocument is what the spreadsheet sink serializes: the full
// projected table plus a summary block describing the resolved filter.
type ExportDocument struct {
	Table         Table
	Summary       SummaryStats
	StartDate     time.Time
	EndDate       time.Time
	DateTypeLabel string
	GeneratedAt   time.Time
}
