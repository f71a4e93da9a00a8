package store

import (
	"database/sql"
	"time"
)

// AggregateRow is the raw shape scanned from the statistics query. Numeric
// columns are nullable at the SQL level; coercion to zero-filled domain
// values happens in the fetcher.
type AggregateRow struct {
	BookingDate    time.Time       `db:"booking_date"`
	PropertyID     int64           `db:"property_id"`
	PropertyName   string          `db:"property_name"`
	ChannelID      sql.NullInt64   `db:"channel_id"`
	ChannelName    sql.NullString  `db:"channel_name"`
	BookingCount   sql.NullInt64   `db:"booking_count"`
	TotalRooms     sql.NullInt64   `db:"total_rooms"`
	ConfirmedRooms sql.NullInt64   `db:"confirmed_rooms"`
	CancelledRooms sql.NullInt64   `db:"cancelled_rooms"`
	TotalDeposit   sql.NullFloat64 `db:"total_deposit"`
	TotalPurchase  sql.NullFloat64 `db:"total_purchase"`
	TotalProfit    sql.NullFloat64 `db:"total_profit"`
}

// SummaryRow is the single row returned by the summary query.
type SummaryRow struct {
	TotalBookings sql.NullInt64   `db:"total_bookings"`
	TotalRevenue  sql.NullFloat64 `db:"total_revenue"`
	PropertyCount sql.NullInt64   `db:"property_count"`
	ActiveDays    sql.NullInt64   `db:"active_days"`
}

// PropertyRow is one property search hit.
type PropertyRow struct {
	ID                int64          `db:"id"`
	Code              sql.NullString `db:"code"`
	Name              sql.NullString `db:"name"`
	HasRecentActivity bool           `db:"has_recent_activity"`
}

// AccountRow is one staff account as stored, including whichever password
// hash format the row happens to carry.
type AccountRow struct {
	AdminID  string         `db:"admin_id"`
	Password string         `db:"password"`
	Status   sql.NullString `db:"status"`
}
