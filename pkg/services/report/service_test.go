package report

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/models/store"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
)

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) Aggregates(ctx context.Context, q domain.Query) ([]store.AggregateRow, error) {
	args := m.Called(ctx, q)
	if rows := args.Get(0); rows != nil {
		return rows.([]store.AggregateRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) Summary(ctx context.Context, q domain.Query) (store.SummaryRow, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(store.SummaryRow), args.Error(1)
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: true}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newTestService(bookings *mockBookingStore, lookup *refdata.Lookup) Service {
	return &service{
		fetcher:    NewFetcher(bookings, lookup, time.Second),
		calculator: NewCalculator(bookings, time.Second),
		lookup:     lookup,
		now:        fixedNow,
	}
}

func TestServiceRun(t *testing.T) {
	bookings := &mockBookingStore{}
	bookings.On("Aggregates", mock.Anything, mock.Anything).Return([]store.AggregateRow{
		{
			BookingDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			PropertyID:   7,
			PropertyName: "Harbor View",
		},
	}, nil)
	bookings.On("Summary", mock.Anything, mock.Anything).Return(store.SummaryRow{}, nil)

	svc := newTestService(bookings, refdata.Defaults())

	data, err := svc.Run(context.Background(), testFilter(7))
	require.NoError(t, err)

	assert.False(t, data.Failed)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Harbor View", data.Rows[0].PropertyName)
	bookings.AssertExpectations(t)
}

func TestServiceRunValidationError(t *testing.T) {
	bookings := &mockBookingStore{}
	svc := newTestService(bookings, refdata.Defaults())

	f := testFilter(1)
	f.StartDate, f.EndDate = f.EndDate, f.StartDate

	_, err := svc.Run(context.Background(), f)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	bookings.AssertNotCalled(t, "Aggregates", mock.Anything, mock.Anything)
}

func TestServiceRunBackendFailure(t *testing.T) {
	bookings := &mockBookingStore{}
	bookings.On("Aggregates", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	bookings.On("Summary", mock.Anything, mock.Anything).Return(store.SummaryRow{}, nil)

	svc := newTestService(bookings, refdata.Defaults())

	data, err := svc.Run(context.Background(), testFilter(7))
	require.NoError(t, err, "backend failures surface through the flag, not the error")

	assert.True(t, data.Failed)
	assert.NotNil(t, data.Rows)
	assert.Empty(t, data.Rows)
}

func TestServiceRunSummaryFailure(t *testing.T) {
	bookings := &mockBookingStore{}
	bookings.On("Aggregates", mock.Anything, mock.Anything).Return([]store.AggregateRow{}, nil)
	bookings.On("Summary", mock.Anything, mock.Anything).Return(store.SummaryRow{}, errors.New("timeout"))

	svc := newTestService(bookings, refdata.Defaults())

	data, err := svc.Run(context.Background(), testFilter(7))
	require.NoError(t, err)

	assert.True(t, data.Failed)
	assert.Equal(t, domain.SummaryStats{}, data.Summary)
}

func TestCalculatorLogsQueryOutcome(t *testing.T) {
	bookings := &mockBookingStore{}
	bookings.On("Summary", mock.Anything, mock.Anything).
		Return(store.SummaryRow{TotalBookings: nullInt64(3)}, nil).Once()
	bookings.On("Summary", mock.Anything, mock.Anything).
		Return(store.SummaryRow{}, errors.New("connection reset")).Once()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())
	calc := NewCalculator(bookings, time.Second)

	_, failed := calc.Summarize(ctx, testFilter(7))
	assert.False(t, failed)
	assert.Contains(t, buf.String(), "computing booking summary")
	assert.Contains(t, buf.String(), "booking summary computed")

	buf.Reset()
	_, failed = calc.Summarize(ctx, testFilter(7))
	assert.True(t, failed)
	assert.Contains(t, buf.String(), "computing booking summary")
	assert.Contains(t, buf.String(), "booking summary query failed")
}

func TestFetcherChannelFallback(t *testing.T) {
	bookings := &mockBookingStore{}
	bookings.On("Aggregates", mock.Anything, mock.Anything).Return([]store.AggregateRow{
		{PropertyID: 1, PropertyName: "A", ChannelID: nullInt64(3)},
		{PropertyID: 2, PropertyName: "B", ChannelID: nullInt64(99)},
		{PropertyID: 3, PropertyName: "C", ChannelName: nullString("Direct")},
	}, nil)

	lookup := refdata.Static(nil, map[int64]string{3: "Partner Portal"})
	f := NewFetcher(bookings, lookup, time.Second)

	rows, failed := f.Fetch(context.Background(), testFilter())
	require.False(t, failed)
	require.Len(t, rows, 3)

	assert.Equal(t, "Partner Portal", rows[0].ChannelName)
	assert.Equal(t, "Unknown", rows[1].ChannelName)
	assert.Equal(t, "Direct", rows[2].ChannelName)
}

func TestServiceBuildExport(t *testing.T) {
	svc := newTestService(&mockBookingStore{}, refdata.Defaults())

	f := testFilter(7)
	data := domain.ReportData{
		Rows:    sampleRows(3),
		Summary: domain.SummaryStats{TotalBookings: 3},
	}

	doc := svc.BuildExport(context.Background(), f, data)

	assert.Equal(t, "Purchase Date", doc.DateTypeLabel)
	assert.Equal(t, "Purchase Date", doc.Table.Columns[0])
	assert.Len(t, doc.Table.Rows, 3, "export keeps all rows")
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), doc.StartDate)
	assert.Equal(t, fixedNow(), doc.GeneratedAt)
}
