package report

import (
	"fmt"
	"strconv"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

type column struct {
	label string
	cell  func(r domain.AggregateRow) string
}

// columns returns the fixed display order: date, property, channel, the
// count columns, the rate columns interleaved with the currency totals.
// The date column label follows the filter's date basis.
func columns(dateLabel string) []column {
	return []column{
		{dateLabel, func(r domain.AggregateRow) string { return r.BookingDate.Format("2006-01-02") }},
		{"Property", func(r domain.AggregateRow) string { return r.PropertyName }},
		{"Channel", func(r domain.AggregateRow) string { return r.ChannelName }},
		{"Bookings", func(r domain.AggregateRow) string { return groupThousands(r.BookingCount) }},
		{"Total Rooms", func(r domain.AggregateRow) string { return groupThousands(r.TotalRooms) }},
		{"Confirmed Rooms", func(r domain.AggregateRow) string { return groupThousands(r.ConfirmedRooms) }},
		{"Cancelled Rooms", func(r domain.AggregateRow) string { return groupThousands(r.CancelledRooms) }},
		{"Cancellation Rate", func(r domain.AggregateRow) string { return formatRate(r.CancellationRate) }},
		{"Deposit Total", func(r domain.AggregateRow) string { return groupThousands(r.TotalDeposit) }},
		{"Purchase Total", func(r domain.AggregateRow) string { return groupThousands(r.TotalPurchase) }},
		{"Profit Total", func(r domain.AggregateRow) string { return groupThousands(r.TotalProfit) }},
		{"Profit Rate", func(r domain.AggregateRow) string { return formatRate(r.ProfitRate) }},
	}
}

// Project maps aggregate rows into their presentation form. Preview mode
// truncates to the first PreviewRowLimit rows in fetcher order; export
// mode keeps the full set. Both share labels, order, and formatting.
func Project(rows []domain.AggregateRow, mode domain.ProjectionMode, dateLabel string) domain.Table {
	cols := columns(dateLabel)

	if mode == domain.ProjectPreview && len(rows) > domain.PreviewRowLimit {
		rows = rows[:domain.PreviewRowLimit]
	}

	table := domain.Table{
		Columns: make([]string, 0, len(cols)),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, c := range cols {
		table.Columns = append(table.Columns, c.label)
	}
	for _, r := range rows {
		cells := make([]string, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, c.cell(r))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// groupThousands renders an integer with comma separators.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
