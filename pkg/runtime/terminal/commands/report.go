package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/services/report"
)

// TableReporter renders a projected table with summary scalars.
type TableReporter interface {
	Handle(table domain.Table, summary domain.SummaryStats, failed bool) error
}

type ReportCmd struct {
	from       string
	to         string
	dateType   string
	properties []int64
	full       bool

	reports  report.Service
	lookup   *refdata.Lookup
	reporter TableReporter
}

func NewReportCmd(reports report.Service, lookup *refdata.Lookup, reporter TableReporter) *cobra.Command {
	rc := &ReportCmd{reports: reports, lookup: lookup, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run booking statistics for a date range",
		RunE:  rc.run,
	}

	addFilterFlags(cmd, &rc.from, &rc.to, &rc.dateType, &rc.properties)
	cmd.Flags().BoolVar(&rc.full, "full", false, "Print every row instead of the preview")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	f, err := parseFilter(rc.from, rc.to, rc.dateType, rc.properties)
	if err != nil {
		return err
	}

	data, err := rc.reports.Run(cmd.Context(), f)
	if err != nil {
		return err
	}

	mode := domain.ProjectPreview
	if rc.full {
		mode = domain.ProjectExport
	}
	table := report.Project(data.Rows, mode, rc.lookup.DateTypeLabel(f.DateType))

	return rc.reporter.Handle(table, data.Summary, data.Failed)
}

func addFilterFlags(cmd *cobra.Command, from, to, dateType *string, properties *[]int64) {
	cmd.Flags().StringVar(from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(dateType, "date-type", string(domain.PurchaseDate),
		fmt.Sprintf("Date basis: %s or %s", domain.PurchaseDate, domain.CheckoutDate))
	cmd.Flags().Int64SliceVar(properties, "properties", nil, "Property ids to include (1 to 10)")

	_ = cmd.MarkFlagRequired("properties")
}

// parseFilter maps the command flags onto a filter, defaulting the date
// range to the seven days ending yesterday.
func parseFilter(from, to, dateType string, properties []int64) (domain.Filter, error) {
	f := domain.DefaultFilter(time.Now())
	f.DateType = domain.DateType(dateType)
	f.PropertyIDs = properties

	if from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", from)
		}
		f.StartDate = start
	}
	if to != "" {
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", to)
		}
		f.EndDate = end
	}
	return f, nil
}
