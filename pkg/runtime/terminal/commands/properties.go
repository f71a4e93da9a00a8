package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/booking-atlas/pkg/services/search"
)

type PropertiesCmd struct {
	limit  int
	search search.Service
}

func NewPropertiesCmd(svc search.Service) *cobra.Command {
	pc := &PropertiesCmd{search: svc}
	cmd := &cobra.Command{
		Use:   "properties <term>",
		Short: "Search properties by name or code",
		Args:  cobra.ExactArgs(1),
		RunE:  pc.run,
	}

	cmd.Flags().IntVar(&pc.limit, "limit", search.DefaultLimit, "Maximum number of results")

	return cmd
}

func (pc *PropertiesCmd) run(cmd *cobra.Command, args []string) error {
	term := strings.TrimSpace(args[0])

	results := pc.search.Search(cmd.Context(), term, pc.limit)
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No properties matched %q.\n", term)
		return nil
	}

	for _, p := range results {
		marker := " "
		if p.HasRecentActivity {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%s\t%s\n", marker, p.ID, p.Code, p.Name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d properties, * marks recent booking activity\n", len(results))
	return nil
}
