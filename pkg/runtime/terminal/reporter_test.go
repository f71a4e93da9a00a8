package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

func TestReporterHandle(t *testing.T) {
	table := domain.Table{
		Columns: []string{"Purchase Date", "Property", "Bookings"},
		Rows: [][]string{
			{"2026-03-01", "Grand Hotel", "12"},
			{"2026-03-02", "B", "9"},
		},
	}
	summary := domain.SummaryStats{TotalBookings: 21, TotalRevenue: 1500000, PropertyCount: 2, ActiveDays: 2}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(table, summary, false))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Contains(t, lines[0], "Purchase Date")
	assert.True(t, strings.HasPrefix(lines[1], "+"), "separator under the header")
	assert.Contains(t, out, "Grand Hotel")
	assert.Contains(t, out, "Bookings: 21")

	// Rows pad to a shared width per column.
	assert.Equal(t, len(lines[0]), len(lines[2]))
}

func TestReporterHandleFailed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(domain.Table{}, domain.SummaryStats{}, true))

	assert.Contains(t, buf.String(), "unavailable")
	assert.NotContains(t, buf.String(), "Bookings:")
}

func TestReporterHandleEmpty(t *testing.T) {
	table := domain.Table{Columns: []string{"Purchase Date", "Property"}}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(table, domain.SummaryStats{}, false))

	assert.Contains(t, buf.String(), "(no rows)")
}
