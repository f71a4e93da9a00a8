package refdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

const (
	dateTypesSheet = "date_types"
	channelsSheet  = "channels"
)

// Lookup holds the reference tables the pipeline needs: date-type display
// labels and channel id to name mapping. A Lookup is immutable once built;
// refreshing means loading a new one and swapping the reference.
type Lookup struct {
	dateTypeLabels map[domain.DateType]string
	channelNames   map[int64]string
}

// Defaults returns a Lookup with the built-in labels and no channel table.
func Defaults() *Lookup {
	return &Lookup{
		dateTypeLabels: map[domain.DateType]string{
			domain.PurchaseDate: "Purchase Date",
			domain.CheckoutDate: "Check-in Date",
		},
		channelNames: map[int64]string{},
	}
}

// Static builds a Lookup from explicit tables, starting from the
// defaults. Either map may be nil.
func Static(dateTypes map[domain.DateType]string, channels map[int64]string) *Lookup {
	lookup := Defaults()
	for code, label := range dateTypes {
		lookup.dateTypeLabels[code] = label
	}
	for id, name := range channels {
		lookup.channelNames[id] = name
	}
	return lookup
}

// DateTypeLabel returns the display label for a date basis, falling back
// to the built-in label and finally the raw code.
func (l *Lookup) DateTypeLabel(dt domain.DateType) string {
	if label, ok := l.dateTypeLabels[dt]; ok {
		return label
	}
	if label, ok := Defaults().dateTypeLabels[dt]; ok {
		return label
	}
	return string(dt)
}

// ChannelName resolves a channel id when the store row carried no name.
func (l *Lookup) ChannelName(id int64) (string, bool) {
	name, ok := l.channelNames[id]
	return name, ok
}

// Loader reads the master reference workbook. Load may be called again at
// any time to pick up edits; each call produces a fresh immutable Lookup.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load builds a Lookup from the workbook's date_types and channels
// sheets. Each sheet has a header row; unknown or blank rows are skipped.
func (ld *Loader) Load() (*Lookup, error) {
	wb, err := excelize.OpenFile(ld.path)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook: %w", err)
	}
	defer wb.Close()

	lookup := Defaults()

	if rows, err := wb.GetRows(dateTypesSheet); err == nil {
		for i, row := range rows {
			if i == 0 || len(row) < 2 {
				continue
			}
			code := strings.TrimSpace(row[0])
			label := strings.TrimSpace(row[1])
			if code == "" || label == "" {
				continue
			}
			lookup.dateTypeLabels[domain.DateType(code)] = label
		}
	}

	channelRows, err := wb.GetRows(channelsSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", channelsSheet, err)
	}
	for i, row := range channelRows {
		if i == 0 || len(row) < 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(row[1])
		if name == "" {
			continue
		}
		lookup.channelNames[id] = name
	}

	return lookup, nil
}
