package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

func sampleDocument() domain.ExportDocument {
	return domain.ExportDocument{
		Table: domain.Table{
			Columns: []string{"Purchase Date", "Property", "Bookings"},
			Rows: [][]string{
				{"2026-03-01", "Grand Hotel", "12"},
				{"2026-03-02", "Grand Hotel", "9"},
			},
		},
		Summary: domain.SummaryStats{
			TotalBookings: 21,
			TotalRevenue:  1500000,
			PropertyCount: 1,
			ActiveDays:    2,
		},
		StartDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		DateTypeLabel: "Purchase Date",
		GeneratedAt:   time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC),
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "booking_stats_20260310_143005.xlsx", Filename(at))
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(sampleDocument(), &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	assert.ElementsMatch(t, []string{"Summary", "Purchase Date"}, wb.GetSheetList())

	period, err := wb.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01 - 2026-03-07", period)

	total, err := wb.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "21", total)

	rows, err := wb.GetRows("Purchase Date")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Purchase Date", "Property", "Bookings"}, rows[0])
	assert.Equal(t, []string{"2026-03-02", "Grand Hotel", "9"}, rows[2])
}

func TestWriteEmptyResult(t *testing.T) {
	doc := sampleDocument()
	doc.Table.Rows = nil

	var buf bytes.Buffer
	require.NoError(t, Write(doc, &buf))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer wb.Close()

	notice, err := wb.GetCellValue("Purchase Date", "A1")
	require.NoError(t, err)
	assert.Contains(t, notice, "No bookings")
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Check-in Date", sheetName("Check-in Date"))
	assert.Equal(t, "a  b", sheetName("a: b"))
	assert.Equal(t, "Data", sheetName("***"))
	assert.Len(t, sheetName("a very long date basis label that keeps going"), maxSheetNameLength)
}
