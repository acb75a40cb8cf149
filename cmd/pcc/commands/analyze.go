package commands

import (
	"github.com/JonMunkholm/pcc/internal/cli"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Correlation matrix and strongest pairs",
		Long: `Parse CSV input and print the pairwise Pearson correlation matrix together
with the column pairs ranked by |r|.

Examples:
  pcc analyze data.csv
  pcc analyze data.csv --format json --top -1
  cat data.csv | pcc analyze --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.outputOptions(cmd)
			if err != nil {
				return err
			}
			a, err := g.analyze(cmd, args)
			if err != nil {
				return err
			}
			return cli.Output(cli.AnalysisResult{Analysis: a}, opts)
		},
	}
}
