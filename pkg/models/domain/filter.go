package domain

import (
	"fmt"
	"time"
)

// DateType selects which booking timestamp the report is keyed on.
type DateType string

const (
	// PurchaseDate groups bookings by the day the booking was made.
	PurchaseDate DateType = "orderDate"
	// CheckoutDate groups bookings by the day of the stay (check-in).
	CheckoutDate DateType = "useDate"
)

func (dt DateType) Valid() bool {
	return dt == PurchaseDate || dt == CheckoutDate
}

// StatusScope is the booking-status filter. Only the full scope is
// supported at the moment; the projector still exposes confirmed and
// cancelled room counts per row.
type StatusScope string

const StatusAll StatusScope = "all"

const (
	// MaxRangeDays caps the inclusive length of the report window.
	MaxRangeDays = 90
	// MaxSelectedProperties caps the property selection a filter may carry.
	MaxSelectedProperties = 10
)

// Filter describes one report request. PropertyIDs must hold between one
// and MaxSelectedProperties distinct ids; an unrestricted query is never
// forwarded to the store.
type Filter struct {
	StartDate   time.Time
	EndDate     time.Time
	DateType    DateType
	PropertyIDs []int64
	Status      StatusScope
}

// DefaultFilter returns the filter the UI starts from: purchase basis over
// the seven days ending yesterday, no properties selected yet.
func DefaultFilter(now time.Time) Filter {
	end := Day(now).AddDate(0, 0, -1)
	return Filter{
		StartDate: end.AddDate(0, 0, -6),
		EndDate:   end,
		DateType:  PurchaseDate,
		Status:    StatusAll,
	}
}

// Validate checks every filter invariant against the supplied clock value.
// It is a pure gate: a filter that fails here must never reach the query
// builder. All violations come back as *ValidationError.
func (f Filter) Validate(now time.Time) error {
	if !f.DateType.Valid() {
		return &ValidationError{Field: "date_type", Message: fmt.Sprintf("unknown date type %q", string(f.DateType))}
	}
	if f.Status != StatusAll {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unsupported status scope %q", string(f.Status))}
	}

	start, end := Day(f.StartDate), Day(f.EndDate)
	if start.After(end) {
		return &ValidationError{Field: "start_date", Message: "start date is after end date"}
	}
	if days := RangeDays(start, end); days > MaxRangeDays {
		return &ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("range spans %d days, maximum is %d", days, MaxRangeDays),
		}
	}

	today := Day(now)
	switch f.DateType {
	case PurchaseDate:
		// Same-day purchase data is not reportable; the window closes at D-1.
		if !end.Before(today) {
			return &ValidationError{Field: "end_date", Message: "purchase-basis reports end no later than yesterday"}
		}
		if start.Before(today.AddDate(0, 0, -MaxRangeDays)) {
			return &ValidationError{Field: "start_date", Message: fmt.Sprintf("purchase-basis reports start at most %d days back", MaxRangeDays)}
		}
	case CheckoutDate:
		if start.Before(today.AddDate(0, 0, -MaxRangeDays)) {
			return &ValidationError{Field: "start_date", Message: fmt.Sprintf("checkout-basis reports start at most %d days back", MaxRangeDays)}
		}
		if end.After(today.AddDate(0, 0, MaxRangeDays)) {
			return &ValidationError{Field: "end_date", Message: fmt.Sprintf("checkout-basis reports end at most %d days ahead", MaxRangeDays)}
		}
	}

	if len(f.PropertyIDs) == 0 {
		return &ValidationError{Field: "property_ids", Message: "at least one property must be selected"}
	}
	if len(f.PropertyIDs) > MaxSelectedProperties {
		return &ValidationError{
			Field:   "property_ids",
			Message: fmt.Sprintf("%d properties selected, maximum is %d", len(f.PropertyIDs), MaxSelectedProperties),
		}
	}
	seen := make(map[int64]struct{}, len(f.PropertyIDs))
	for _, id := range f.PropertyIDs {
		if id <= 0 {
			return &ValidationError{Field: "property_ids", Message: fmt.Sprintf("invalid property id %d", id)}
		}
		if _, dup := seen[id]; dup {
			return &ValidationError{Field: "property_ids", Message: fmt.Sprintf("duplicate property id %d", id)}
		}
		seen[id] = struct{}{}
	}

	return nil
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RangeDays returns the inclusive day count between two dates.
func RangeDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start))/(24*time.Hour)) + 1
}
