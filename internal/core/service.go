package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/pcc/internal/correlation"
	"github.com/JonMunkholm/pcc/internal/logging"
	"github.com/JonMunkholm/pcc/internal/render"
	"github.com/JonMunkholm/pcc/internal/table"
	"github.com/JonMunkholm/pcc/internal/vecmath"
	"github.com/a-h/templ"
	"github.com/google/uuid"
)

// Defaults applied by NewService to zero Options fields.
const (
	DefaultTopPairs   = 5
	DefaultPlotWidth  = 480
	DefaultPlotHeight = 360
)

// Options tunes a Service. Zero fields take the package defaults.
type Options struct {
	MaxInputBytes int64
	TopPairs      int // ranked pairs kept on an Analysis; negative keeps all
	PlotWidth     int
	PlotHeight    int
}

// Service runs analyses for the web server and the CLI.
type Service struct {
	opts    Options
	limiter *AnalysisLimiter
	now     func() time.Time
}

// NewService creates a Service. A nil limiter means analyses are not
// bounded, which is what the CLI wants.
func NewService(opts Options, limiter *AnalysisLimiter) *Service {
	if opts.MaxInputBytes <= 0 {
		opts.MaxInputBytes = DefaultMaxInputBytes
	}
	if opts.TopPairs == 0 {
		opts.TopPairs = DefaultTopPairs
	}
	if opts.PlotWidth <= 0 {
		opts.PlotWidth = DefaultPlotWidth
	}
	if opts.PlotHeight <= 0 {
		opts.PlotHeight = DefaultPlotHeight
	}

	return &Service{
		opts:    opts,
		limiter: limiter,
		now:     time.Now,
	}
}

// Options returns the effective options after defaults.
func (s *Service) Options() Options {
	return s.opts
}

// Analysis is the result of one Analyze call. See MarshalJSON for its JSON
// form.
type Analysis struct {
	ID        uuid.UUID          `yaml:"id"`
	Columns   []string           `yaml:"columns"`
	Rows      [][]float64        `yaml:"rows"`
	Matrix    correlation.Matrix `yaml:"matrix"`
	Pairs     []correlation.Pair `yaml:"pairs"`
	CreatedAt time.Time          `yaml:"created_at"`

	table *table.Table
}

// Table returns the parsed table behind a.
func (a *Analysis) Table() *table.Table {
	return a.table
}

// Analyze parses input, computes its correlation matrix and ranks the
// column pairs. The analysis takes its ID from ctx when one was attached with
// ContextWithAnalysisID. Parse errors are returned unwrapped so callers can inspect
// the *table.ParseError directly.
func (s *Service) Analyze(ctx context.Context, input string) (*Analysis, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
		defer s.limiter.Release()
	}

	id, ok := AnalysisIDFromContext(ctx)
	if !ok {
		id = uuid.New()
	}
	logger := logging.WithFields(ctx, "analysis_id", id.String())
	start := s.now()

	t, err := table.Parse(input)
	if err != nil {
		logger.Debug("analysis input rejected", "error", err)
		return nil, err
	}

	// Compute is not interruptible, so this is the last point a cancelled
	// request can bail out cheaply.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := correlation.Compute(t)
	if err != nil {
		return nil, fmt.Errorf("compute correlation matrix: %w", err)
	}

	a := &Analysis{
		ID:        id,
		Columns:   t.Columns(),
		Rows:      rowsOf(t),
		Matrix:    m,
		Pairs:     s.rankPairs(t.Columns(), m),
		CreatedAt: start,
		table:     t,
	}

	logger.Info("analysis complete",
		"columns", t.NumColumns(),
		"rows", t.NumRows(),
		"pairs", len(a.Pairs),
		"duration", s.now().Sub(start),
	)
	return a, nil
}

// ParseTable applies the input checks of Analyze and parses input without
// computing correlations. Parsing is linear, so it does not take a limiter
// slot.
func (s *Service) ParseTable(input string) (*table.Table, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}
	return table.Parse(input)
}

func (s *Service) checkInput(input string) error {
	if input == "" {
		return ErrEmptyInput
	}
	if int64(len(input)) > s.opts.MaxInputBytes {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrInputTooLarge, len(input), s.opts.MaxInputBytes)
	}
	return nil
}

// AnalyzeReader reads r with ReadInput and analyzes the result.
func (s *Service) AnalyzeReader(ctx context.Context, r io.Reader) (*Analysis, error) {
	input, err := ReadInput(r, s.opts.MaxInputBytes)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, input)
}

// Report renders a as an HTML fragment with a scatter plot of its strongest
// pair.
func (s *Service) Report(a *Analysis) templ.Component {
	return render.AnalysisReport(render.Report{
		Table:      a.table,
		Matrix:     a.Matrix,
		Pairs:      a.Pairs,
		Plots:      1,
		PlotWidth:  s.opts.PlotWidth,
		PlotHeight: s.opts.PlotHeight,
	})
}

// Similarity holds both similarity measures for a pair of vectors.
type Similarity struct {
	Pearson float64 `yaml:"pearson"`
	Cosine  float64 `yaml:"cosine"`
}

// Similarity compares a and b. Cosine is NaN when either vector has zero
// magnitude.
func (s *Service) Similarity(a, b []float64) (Similarity, error) {
	r, err := vecmath.Pearson(a, b)
	if err != nil {
		return Similarity{}, err
	}
	c, err := vecmath.CosineSimilarity(a, b)
	if err != nil {
		return Similarity{}, err
	}
	return Similarity{Pearson: r, Cosine: c}, nil
}

// Scatter plots column yName against column xName of a. Non-positive sizes
// take the configured plot size.
func (s *Service) Scatter(a *Analysis, xName, yName string, width, height int) (string, error) {
	return s.ScatterTable(a.table, xName, yName, width, height)
}

// ScatterTable plots column yName against column xName of t without
// computing correlations.
func (s *Service) ScatterTable(t *table.Table, xName, yName string, width, height int) (string, error) {
	x, err := columnByName(t, xName)
	if err != nil {
		return "", err
	}
	y, err := columnByName(t, yName)
	if err != nil {
		return "", err
	}
	return s.ScatterValues(x, y, width, height)
}

// ScatterValues plots y against x. Non-positive sizes take the configured
// plot size.
func (s *Service) ScatterValues(x, y []float64, width, height int) (string, error) {
	if width <= 0 {
		width = s.opts.PlotWidth
	}
	if height <= 0 {
		height = s.opts.PlotHeight
	}
	return render.ScatterSVG(x, y, width, height)
}

func (s *Service) rankPairs(names []string, m correlation.Matrix) []correlation.Pair {
	if s.opts.TopPairs < 0 {
		return correlation.RankPairs(names, m)
	}
	return correlation.Strongest(names, m, s.opts.TopPairs)
}

func columnByName(t *table.Table, name string) ([]float64, error) {
	i := t.IndexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return t.Column(i), nil
}

func rowsOf(t *table.Table) [][]float64 {
	rows := make([][]float64, t.NumRows())
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}
