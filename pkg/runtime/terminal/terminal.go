package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/booking-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/booking-atlas/pkg/services/refdata"
	"github.com/de-tools/booking-atlas/pkg/services/report"
	"github.com/de-tools/booking-atlas/pkg/services/search"
)

// CLI is the command-line surface over the statistics pipeline.
type CLI struct {
	rootCmd *cobra.Command
}

// Options carry the services the commands run against.
type Options struct {
	Reports report.Service
	Search  search.Service
	Lookup  *refdata.Lookup
	Output  io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	rootCmd := &cobra.Command{
		Use:   "booking-stats",
		Short: "Booking statistics reporting tool",
	}
	rootCmd.SetOut(opts.Output)

	rootCmd.AddCommand(commands.NewReportCmd(opts.Reports, opts.Lookup, NewReporter(opts.Output)))
	rootCmd.AddCommand(commands.NewExportCmd(opts.Reports))
	rootCmd.AddCommand(commands.NewPropertiesCmd(opts.Search))

	return &CLI{rootCmd: rootCmd}
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}
