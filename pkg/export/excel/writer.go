package excel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

const (
	summarySheet = "Summary"

	maxSheetNameLength = 31
)

// Filename names a workbook by its generation time.
func Filename(generatedAt time.Time) string {
	return fmt.Sprintf("booking_stats_%s.xlsx", generatedAt.Format("20060102_150405"))
}

// Write renders an export document as an xlsx workbook: a Summary sheet
// with the period and the headline scalars, then a data sheet named after
// the date basis. An empty result still produces a valid workbook whose
// data sheet says so instead of carrying a lone header row.
func Write(doc domain.ExportDocument, w io.Writer) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := writeSummarySheet(wb, doc); err != nil {
		return &domain.ExportError{Err: err}
	}
	if err := writeDataSheet(wb, doc); err != nil {
		return &domain.ExportError{Err: err}
	}
	if err := wb.Write(w); err != nil {
		return &domain.ExportError{Err: fmt.Errorf("write workbook: %w", err)}
	}
	return nil
}

func writeSummarySheet(wb *excelize.File, doc domain.ExportDocument) error {
	if err := wb.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]any{
		{"Period", fmt.Sprintf("%s - %s", doc.StartDate.Format("2006-01-02"), doc.EndDate.Format("2006-01-02"))},
		{"Date Basis", doc.DateTypeLabel},
		{"Generated At", doc.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Total Bookings", doc.Summary.TotalBookings},
		{"Total Revenue", doc.Summary.TotalRevenue},
		{"Properties", doc.Summary.PropertyCount},
		{"Active Days", doc.Summary.ActiveDays},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	if err := wb.SetColWidth(summarySheet, "A", "A", 18); err != nil {
		return err
	}
	return wb.SetColWidth(summarySheet, "B", "B", 28)
}

func writeDataSheet(wb *excelize.File, doc domain.ExportDocument) error {
	name := sheetName(doc.DateTypeLabel)
	if _, err := wb.NewSheet(name); err != nil {
		return fmt.Errorf("create data sheet: %w", err)
	}

	if len(doc.Table.Rows) == 0 {
		notice := []any{"No bookings matched the selected period."}
		return wb.SetSheetRow(name, "A1", &notice)
	}

	header := make([]any, len(doc.Table.Columns))
	for i, col := range doc.Table.Columns {
		header[i] = col
	}
	if err := wb.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range doc.Table.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(name, start, &cells); err != nil {
			return fmt.Errorf("write data row %d: %w", i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(doc.Table.Columns))
	if err != nil {
		return err
	}
	return wb.SetColWidth(name, "A", last, 16)
}

// sheetName makes a display label safe as an xlsx sheet name.
func sheetName(label string) string {
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	name := strings.TrimSpace(replacer.Replace(label))
	if name == "" {
		name = "Data"
	}
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	return name
}
