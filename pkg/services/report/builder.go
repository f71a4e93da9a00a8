package report

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

// Status classification for room-count aggregation. A booking whose status
// falls in neither bucket is outside the "all" scope and excluded entirely.
var (
	ConfirmedStatuses = []string{
		"addpay", "complete", "confirm", "confirmWait", "confirmWip", "noshow", "pending",
	}
	CancelledStatuses = []string{
		"cancel", "cancelWait", "cancelWip", "cancelRequest", "fail",
	}
)

func allStatuses() []string {
	all := make([]string, 0, len(ConfirmedStatuses)+len(CancelledStatuses))
	all = append(all, ConfirmedStatuses...)
	all = append(all, CancelledStatuses...)
	return all
}

func dateColumn(dt domain.DateType) string {
	if dt == domain.CheckoutDate {
		return "b.checkin_date"
	}
	return "b.created_at"
}

// BuildStatisticsQuery builds the detail aggregate: one row per
// (calendar date, property, channel) with booking and room counts, room
// counts split by status bucket, and currency totals. Pure and
// deterministic; every filter value travels as a bound parameter.
func BuildStatisticsQuery(f domain.Filter) domain.Query {
	col := dateColumn(f.DateType)

	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	start := arg(domain.Day(f.StartDate))
	// Exclusive upper bound: the day after the last requested date.
	end := arg(domain.Day(f.EndDate).AddDate(0, 0, 1))
	confirmed := arg(pq.Array(ConfirmedStatuses))
	cancelled := arg(pq.Array(CancelledStatuses))
	scope := arg(pq.Array(allStatuses()))

	var sb strings.Builder
	fmt.Fprintf(&sb, `
	SELECT
		DATE(%[1]s) AS booking_date,
		p.id AS property_id,
		p.name AS property_name,
		b.channel_id AS channel_id,
		c.name AS channel_name,
		COUNT(*) AS booking_count,
		SUM(b.room_count) AS total_rooms,
		SUM(CASE WHEN b.status = ANY(%[4]s) THEN b.room_count ELSE 0 END) AS confirmed_rooms,
		SUM(CASE WHEN b.status = ANY(%[5]s) THEN b.room_count ELSE 0 END) AS cancelled_rooms,
		SUM(b.deposit_amount) AS total_deposit,
		SUM(b.purchase_amount) AS total_purchase,
		SUM(b.profit_amount) AS total_profit
	FROM bookings b
	JOIN properties p ON p.id = b.property_id
	LEFT JOIN channels c ON c.id = b.channel_id
	WHERE %[1]s >= %[2]s AND %[1]s < %[3]s
		AND b.status = ANY(%[6]s)`,
		col, start, end, confirmed, cancelled, scope)

	if len(f.PropertyIDs) > 0 {
		fmt.Fprintf(&sb, "\n\t\tAND b.property_id = ANY(%s)", arg(pq.Array(f.PropertyIDs)))
	}

	fmt.Fprintf(&sb, `
	GROUP BY DATE(%[1]s), p.id, p.name, b.channel_id, c.name
	ORDER BY booking_date ASC, property_name ASC, channel_name ASC`, col)

	return domain.Query{SQL: sb.String(), Args: args}
}

// BuildSummaryQuery builds the whole-period scalar query. It runs as a
// separate statement, so a write landing between the two queries can make
// the headline numbers disagree with the detail rows.
func BuildSummaryQuery(f domain.Filter) domain.Query {
	col := dateColumn(f.DateType)

	args := make([]any, 0, 4)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	start := arg(domain.Day(f.StartDate))
	end := arg(domain.Day(f.EndDate).AddDate(0, 0, 1))
	scope := arg(pq.Array(allStatuses()))

	var sb strings.Builder
	fmt.Fprintf(&sb, `
	SELECT
		COUNT(*) AS total_bookings,
		SUM(b.deposit_amount) AS total_revenue,
		COUNT(DISTINCT b.property_id) AS property_count,
		COUNT(DISTINCT DATE(%[1]s)) AS active_days
	FROM bookings b
	WHERE %[1]s >= %[2]s AND %[1]s < %[3]s
		AND b.status = ANY(%[4]s)`,
		col, start, end, scope)

	if len(f.PropertyIDs) > 0 {
		fmt.Fprintf(&sb, "\n\t\tAND b.property_id = ANY(%s)", arg(pq.Array(f.PropertyIDs)))
	}

	return domain.Query{SQL: sb.String(), Args: args}
}
