package api

// ReportRequest is the body of a report query or export call. Dates use
// the YYYY-MM-DD form; DateType is one of "orderDate" or "useDate".
type ReportRequest struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	DateType    string  `json:"date_type"`
	PropertyIDs []int64 `json:"property_ids"`
}

// Summary mirrors domain.SummaryStats for transport.
type Summary struct {
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
	PropertyCount int64   `json:"property_count"`
	ActiveDays    int64   `json:"active_days"`
}

// Table is a projected row set: display column labels plus formatted cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ReportResponse carries the preview table and summary for one report run.
// Failed is true when the backend query failed; clients must show a
// failure message instead of treating the empty table as zero matches.
type ReportResponse struct {
	Table     Table   `json:"table"`
	Summary   Summary `json:"summary"`
	TotalRows int     `json:"total_rows"`
	Truncated bool    `json:"truncated"`
	Failed    bool    `json:"failed"`
}

// Error is the uniform error body for 4xx responses.
type Error struct {
	Message string `json:"message"`
}
