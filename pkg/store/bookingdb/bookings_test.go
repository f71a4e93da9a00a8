package bookingdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestBookingStoreAggregates(t *testing.T) {
	db, mock := newMockDB(t)
	bookings, err := NewBookingStore(db)
	require.NoError(t, err)

	q := domain.Query{SQL: "SELECT booking_date FROM bookings", Args: []any{int64(1)}}
	mock.ExpectQuery(q.SQL).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"booking_date", "property_id", "property_name", "channel_id", "channel_name",
			"booking_count", "total_rooms", "confirmed_rooms", "cancelled_rooms",
			"total_deposit", "total_purchase", "total_profit",
		}).AddRow(
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), int64(7), "Grand Hotel", int64(3), "Direct",
			int64(12), int64(20), int64(18), nil,
			1500000.4, nil, 300000.0,
		))

	rows, err := bookings.Aggregates(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(7), row.PropertyID)
	assert.Equal(t, "Direct", row.ChannelName.String)
	assert.Equal(t, int64(12), row.BookingCount.Int64)
	assert.False(t, row.CancelledRooms.Valid)
	assert.False(t, row.TotalPurchase.Valid)
	assert.InDelta(t, 1500000.4, row.TotalDeposit.Float64, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingStoreAggregatesError(t *testing.T) {
	db, mock := newMockDB(t)
	bookings, err := NewBookingStore(db)
	require.NoError(t, err)

	q := domain.Query{SQL: "SELECT booking_date FROM bookings"}
	mock.ExpectQuery(q.SQL).WillReturnError(errors.New("connection refused"))

	_, err = bookings.Aggregates(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query booking aggregates")
}

func TestBookingStoreSummary(t *testing.T) {
	db, mock := newMockDB(t)
	bookings, err := NewBookingStore(db)
	require.NoError(t, err)

	q := domain.Query{SQL: "SELECT total_bookings FROM bookings"}
	mock.ExpectQuery(q.SQL).WillReturnRows(sqlmock.NewRows([]string{
		"total_bookings", "total_revenue", "property_count", "active_days",
	}).AddRow(int64(42), 1234.5, int64(3), int64(7)))

	row, err := bookings.Summary(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(42), row.TotalBookings.Int64)
	assert.InDelta(t, 1234.5, row.TotalRevenue.Float64, 0.001)
}

func TestBookingStoreSummaryNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	bookings, err := NewBookingStore(db)
	require.NoError(t, err)

	q := domain.Query{SQL: "SELECT total_bookings FROM bookings"}
	mock.ExpectQuery(q.SQL).WillReturnRows(sqlmock.NewRows([]string{
		"total_bookings", "total_revenue", "property_count", "active_days",
	}))

	row, err := bookings.Summary(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, row.TotalBookings.Valid)
}

func TestNewBookingStoreNilDB(t *testing.T) {
	_, err := NewBookingStore(nil)
	assert.Error(t, err)
}
