package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/JonMunkholm/pcc/internal/core"
	"github.com/JonMunkholm/pcc/internal/correlation"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme defines the color scheme for terminal views.
type Theme struct {
	Primary  lipgloss.Color // Headers and labels
	Strong   lipgloss.Color // |r| >= StrongThreshold
	Moderate lipgloss.Color // |r| >= ModerateThreshold
	Dim      lipgloss.Color // Weak coefficients and help text
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary:  lipgloss.Color("#00ff9f"),
	Strong:   lipgloss.Color("#ff5f87"),
	Moderate: lipgloss.Color("#ffd75f"),
	Dim:      lipgloss.Color("#6e7681"),
}

// Coefficient bands used to color matrix cells.
const (
	StrongThreshold   = 0.7
	ModerateThreshold = 0.4
)

// Styles holds all styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Border   lipgloss.Style
	Strong   lipgloss.Style
	Moderate lipgloss.Style
	Weak     lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(t.Primary),
		Strong:   lipgloss.NewStyle().Bold(true).Foreground(t.Strong).Padding(0, 1),
		Moderate: lipgloss.NewStyle().Foreground(t.Moderate).Padding(0, 1),
		Weak:     lipgloss.NewStyle().Foreground(t.Dim).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// coefficient returns the style for a coefficient's strength band.
func (s Styles) coefficient(r float64) lipgloss.Style {
	switch a := math.Abs(r); {
	case a >= StrongThreshold:
		return s.Strong
	case a >= ModerateThreshold:
		return s.Moderate
	default:
		return s.Weak
	}
}

// MatrixView renders the full symmetric matrix with column names on both
// axes. Matrices over fewer than two columns render a short notice.
func MatrixView(columns []string, m correlation.Matrix, st Styles) string {
	n := m.Size()
	if n == 0 {
		return st.Help.Render("At least two columns are needed for a correlation matrix.")
	}

	headers := make([]string, 0, n+1)
	headers = append(headers, "")
	for i := 0; i < n; i++ {
		headers = append(headers, columnName(columns, i))
	}

	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, 0, n+1)
		row = append(row, columnName(columns, i))
		for j := 0; j < n; j++ {
			row = append(row, formatCoefficient(m.At(i, j)))
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return st.Label
			}
			return st.coefficient(m.At(row, col-1))
		})
	return t.String()
}

// PairsView renders ranked pairs as a numbered list.
func PairsView(pairs []correlation.Pair, st Styles) string {
	if len(pairs) == 0 {
		return st.Help.Render("No column pairs.")
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d. %s & %s  %s", i+1, p.Left, p.Right,
			st.coefficient(p.Coefficient).Render("r = "+formatCoefficient(p.Coefficient)))
	}
	return b.String()
}

// AnalysisResult wraps an analysis for Output.
type AnalysisResult struct {
	*core.Analysis
}

// MarshalYAML encodes the wrapped analysis.
func (r AnalysisResult) MarshalYAML() (any, error) {
	return r.Analysis, nil
}

// View renders the matrix and the strongest pairs.
func (r AnalysisResult) View(st Styles) string {
	a := r.Analysis
	summary := st.Help.Render(fmt.Sprintf("%d columns, %d rows", len(a.Columns), len(a.Rows)))
	return strings.Join([]string{
		st.Title.Render("Correlation matrix") + " " + summary,
		MatrixView(a.Columns, a.Matrix, st),
		"",
		st.Title.Render("Strongest pairs"),
		PairsView(a.Pairs, st),
	}, "\n")
}

// SimilarityResult wraps a similarity comparison for Output.
type SimilarityResult struct {
	core.Similarity
}

// MarshalYAML encodes the wrapped similarity.
func (r SimilarityResult) MarshalYAML() (any, error) {
	return r.Similarity, nil
}

// View renders both measures on one line each.
func (r SimilarityResult) View(st Styles) string {
	return st.Label.Render("pearson") + " " + st.coefficient(r.Pearson).Render(formatCoefficient(r.Pearson)) + "\n" +
		st.Label.Render("cosine ") + " " + st.coefficient(r.Cosine).Render(formatCoefficient(r.Cosine))
}

func formatCoefficient(r float64) string {
	if math.IsNaN(r) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", r)
}

func columnName(columns []string, i int) string {
	if i < len(columns) {
		return columns[i]
	}
	return fmt.Sprintf("#%d", i+1)
}
