package commands

import (
	"github.com/JonMunkholm/pcc/internal/cli"
	"github.com/spf13/cobra"
)

func newScatterCmd(g *globals) *cobra.Command {
	var (
		x, y          string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "scatter [file]",
		Short: "SVG scatter plot of two columns",
		Long: `Plot column --y against column --x as an SVG scatter plot.

Examples:
  pcc scatter data.csv --x age --y weight -o plot.svg
  pcc scatter data.csv --x age --y weight --width 800 --height 600`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := g.readInput(cmd, args)
			if err != nil {
				return err
			}
			t, err := g.service.ParseTable(input)
			if err != nil {
				return err
			}
			svg, err := g.service.ScatterTable(t, x, y, width, height)
			if err != nil {
				return err
			}
			return cli.WriteFile(cmd.OutOrStdout(), g.output, svg+"\n")
		},
	}

	cmd.Flags().StringVar(&x, "x", "", "column for the horizontal axis")
	cmd.Flags().StringVar(&y, "y", "", "column for the vertical axis")
	cmd.Flags().IntVar(&width, "width", 0, "plot width in pixels (default from ANALYSIS_PLOT_WIDTH)")
	cmd.Flags().IntVar(&height, "height", 0, "plot height in pixels (default from ANALYSIS_PLOT_HEIGHT)")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}
