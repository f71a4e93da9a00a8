package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

// Reporter renders a projected report table and its summary as aligned
// text for the console.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(table domain.Table, summary domain.SummaryStats, failed bool) error {
	if failed {
		_, err := fmt.Fprintln(c.writer, "Report data is unavailable; the statistics query failed.")
		return err
	}

	widths := columnWidths(table)

	if err := c.writeRow(table.Columns, widths); err != nil {
		return err
	}
	if err := c.writeSeparator(widths); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := c.writeRow(row, widths); err != nil {
			return err
		}
	}
	if len(table.Rows) == 0 {
		if _, err := fmt.Fprintln(c.writer, "(no rows)"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(c.writer,
		"\nBookings: %d  Revenue: %.0f  Properties: %d  Active Days: %d\n",
		summary.TotalBookings, summary.TotalRevenue, summary.PropertyCount, summary.ActiveDays)
	return err
}

func (c *Reporter) writeRow(cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	_, err := fmt.Fprintf(c.writer, "| %s |\n", strings.Join(parts, " | "))
	return err
}

func (c *Reporter) writeSeparator(widths []int) error {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	_, err := fmt.Fprintf(c.writer, "+%s+\n", strings.Join(parts, "+"))
	return err
}

func columnWidths(table domain.Table) []int {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}
