package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/pcc/internal/cli"
	"github.com/JonMunkholm/pcc/internal/config"
	"github.com/JonMunkholm/pcc/internal/core"
	"github.com/JonMunkholm/pcc/internal/logging"
	"github.com/spf13/cobra"
)

// globals holds flags shared by every command.
type globals struct {
	format   string
	output   string
	logLevel string
	maxBytes int64
	topPairs int

	service *core.Service
}

// NewRootCmd builds the command tree. Commands read from cmd.InOrStdin and
// write to cmd.OutOrStdout, so tests can drive them with SetIn and SetOut.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "pcc",
		Short: "Pearson correlation of CSV columns",
		Long: `pcc reads CSV text with a header line of column names followed by rows
of numbers, and reports how strongly each pair of columns correlates.

Limits default to the ANALYSIS_* environment variables used by the server.

Examples:
  pcc analyze data.csv
  pcc analyze --format table < data.csv
  pcc html data.csv -o report.html
  pcc scatter data.csv --x age --y weight -o plot.svg
  pcc similarity --a 1,2,3 --b 2,4,7`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.format, "format", "f", "yaml", "output format: yaml, json or table")
	pf.StringVarP(&g.output, "output", "o", "", "write output to this file instead of stdout")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.Int64Var(&g.maxBytes, "max-bytes", 0, "largest accepted input in bytes (default from ANALYSIS_MAX_INPUT_BYTES)")
	pf.IntVar(&g.topPairs, "top", 0, "number of ranked pairs to report, -1 for all (default from ANALYSIS_TOP_PAIRS)")

	root.AddCommand(
		newAnalyzeCmd(g),
		newHTMLCmd(g),
		newScatterCmd(g),
		newSimilarityCmd(g),
	)
	return root
}

// setup configures logging and builds the service from the environment
// and flags.
func (g *globals) setup(cmd *cobra.Command) error {
	logging.Setup(g.logLevel, "text", cmd.ErrOrStderr())

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := core.Options{
		MaxInputBytes: cfg.Analysis.MaxInputBytes,
		TopPairs:      cfg.Analysis.TopPairs,
		PlotWidth:     cfg.Analysis.PlotWidth,
		PlotHeight:    cfg.Analysis.PlotHeight,
	}
	if cmd.Flags().Changed("max-bytes") {
		opts.MaxInputBytes = g.maxBytes
	}
	if cmd.Flags().Changed("top") {
		opts.TopPairs = g.topPairs
	}

	g.service = core.NewService(opts, nil)
	return nil
}

func (g *globals) outputOptions(cmd *cobra.Command) (cli.OutputOptions, error) {
	format, err := cli.ParseFormat(g.format)
	if err != nil {
		return cli.OutputOptions{}, err
	}
	return cli.OutputOptions{
		Format: format,
		File:   g.output,
		Writer: cmd.OutOrStdout(),
	}, nil
}

// readInput reads CSV from the file named by args, or stdin.
func (g *globals) readInput(cmd *cobra.Command, args []string) (string, error) {
	limit := g.service.Options().MaxInputBytes
	if len(args) == 0 || args[0] == "-" {
		return core.ReadInput(cmd.InOrStdin(), limit)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return core.ReadInput(f, limit)
}

// analyze reads and analyzes the command's input.
func (g *globals) analyze(cmd *cobra.Command, args []string) (*core.Analysis, error) {
	input, err := g.readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	return g.service.Analyze(cmd.Context(), input)
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	return run(ctx, NewRootCmd(), os.Stderr)
}

func run(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	if err := root.ExecuteContext(ctx); err != nil {
		if core.IsUserFacing(err) {
			cli.PrintError(stderr, "%s", core.FormatUserError(err))
		} else {
			cli.PrintError(stderr, "%v", err)
		}
		return 1
	}
	return 0
}
