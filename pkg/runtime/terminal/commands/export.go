package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/booking-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/booking-atlas/pkg/services/report"
)

type ExportCmd struct {
	from       string
	to         string
	dateType   string
	properties []int64
	outDir     string

	reports report.Service
}

func NewExportCmd(reports report.Service) *cobra.Command {
	ec := &ExportCmd{reports: reports}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write booking statistics to an xlsx workbook",
		RunE:  ec.run,
	}

	addFilterFlags(cmd, &ec.from, &ec.to, &ec.dateType, &ec.properties)
	cmd.Flags().StringVar(&ec.outDir, "out", ".", "Directory to write the workbook into")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	f, err := parseFilter(ec.from, ec.to, ec.dateType, ec.properties)
	if err != nil {
		return err
	}

	data, err := ec.reports.Run(cmd.Context(), f)
	if err != nil {
		return err
	}
	if data.Failed {
		return fmt.Errorf("report data is unavailable, nothing exported")
	}

	doc := ec.reports.BuildExport(cmd.Context(), f, data)

	path, err := export.NewReporter(ec.outDir).Handle(doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(doc.Table.Rows), path)
	return nil
}
