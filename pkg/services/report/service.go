package report

import (
	"context"
	"time"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
)

// Service runs the full pipeline for one validated filter: detail
// aggregate plus independent summary. Validation failures are returned as
// errors before any query executes; backend failures surface only through
// ReportData.Failed.
type Service interface {
	Run(ctx context.Context, f domain.Filter) (domain.ReportData, error)
	BuildExport(ctx context.Context, f domain.Filter, data domain.ReportData) domain.ExportDocument
}

type service struct {
	fetcher    Fetcher
	calculator Calculator
	lookup     *refdata.Lookup
	now        func() time.Time
}

func NewService(fetcher Fetcher, calculator Calculator, lookup *refdata.Lookup) Service {
	return &service{
		fetcher:    fetcher,
		calculator: calculator,
		lookup:     lookup,
		now:        time.Now,
	}
}

func (s *service) Run(ctx context.Context, f domain.Filter) (domain.ReportData, error) {
	if err := f.Validate(s.now()); err != nil {
		return domain.ReportData{}, err
	}

	rows, fetchFailed := s.fetcher.Fetch(ctx, f)
	stats, summaryFailed := s.calculator.Summarize(ctx, f)

	return domain.ReportData{
		Rows:    rows,
		Summary: stats,
		Failed:  fetchFailed || summaryFailed,
	}, nil
}

func (s *service) BuildExport(_ context.Context, f domain.Filter, data domain.ReportData) domain.ExportDocument {
	return domain.ExportDocument{
		Table:         Project(data.Rows, domain.ProjectExport, s.lookup.DateTypeLabel(f.DateType)),
		Summary:       data.Summary,
		StartDate:     domain.Day(f.StartDate),
		EndDate:       domain.Day(f.EndDate),
		DateTypeLabel: s.lookup.DateTypeLabel(f.DateType),
		GeneratedAt:   s.now(),
	}
}
