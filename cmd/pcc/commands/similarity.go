package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/pcc/internal/cli"
	"github.com/spf13/cobra"
)

func newSimilarityCmd(g *globals) *cobra.Command {
	var a, b string

	cmd := &cobra.Command{
		Use:   "similarity",
		Short: "Pearson and cosine similarity of two number lists",
		Long: `Compare two comma-separated number lists of equal length.

Examples:
  pcc similarity --a 1,2,3 --b 2,4,7
  pcc similarity --a 1,0 --b 0,1 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.outputOptions(cmd)
			if err != nil {
				return err
			}
			va, err := parseVector("a", a)
			if err != nil {
				return err
			}
			vb, err := parseVector("b", b)
			if err != nil {
				return err
			}
			sim, err := g.service.Similarity(va, vb)
			if err != nil {
				return err
			}
			return cli.Output(cli.SimilarityResult{Similarity: sim}, opts)
		},
	}

	cmd.Flags().StringVar(&a, "a", "", "first comma-separated number list")
	cmd.Flags().StringVar(&b, "b", "", "second comma-separated number list")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

// parseVector parses "1, 2.5,3" into numbers.
func parseVector(flag, s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s: value %d: %w", flag, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
