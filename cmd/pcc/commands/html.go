package commands

import (
	"strings"

	"github.com/JonMunkholm/pcc/internal/cli"
	"github.com/JonMunkholm/pcc/internal/web/templates"
	"github.com/spf13/cobra"
)

func newHTMLCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "html [file]",
		Short: "Standalone HTML report",
		Long: `Render the data table, correlation matrix and a scatter plot of the
strongest pair as a standalone HTML page.

Examples:
  pcc html data.csv -o report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.analyze(cmd, args)
			if err != nil {
				return err
			}

			var b strings.Builder
			page := templates.Page("pcc report", g.service.Report(a))
			if err := page.Render(cmd.Context(), &b); err != nil {
				return err
			}
			return cli.WriteFile(cmd.OutOrStdout(), g.output, b.String())
		},
	}
}
