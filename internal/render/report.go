package render

import (
	"context"
	"io"
	"strconv"

	"github.com/JonMunkholm/pcc/internal/correlation"
	"github.com/JonMunkholm/pcc/internal/table"
	"github.com/a-h/templ"
)

// Report is the input for AnalysisReport.
type Report struct {
	Table  *table.Table
	Matrix correlation.Matrix
	Pairs  []correlation.Pair // listed in order

	// Plots is how many of the leading pairs get a scatter plot.
	Plots      int
	PlotWidth  int
	PlotHeight int
}

// AnalysisReport renders the data table, its correlation matrix, the listed
// pairs and a scatter plot for the first Plots of them.
func AnalysisReport(r Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mw := &markupWriter{w: w}
		names := r.Table.Columns()

		mw.raw(`<section class="analysis">`)
		mw.raw("<h2>Data</h2>")
		if err := Table(r.Table).Render(ctx, w); err != nil {
			return err
		}

		mw.raw("<h2>Correlation matrix</h2>")
		if r.Matrix.Size() == 0 {
			mw.raw("<p>At least two columns with data are needed for a correlation matrix.</p>")
		} else if err := CorrelationMatrix(names, r.Matrix).Render(ctx, w); err != nil {
			return err
		}

		if len(r.Pairs) > 0 {
			mw.raw("<h2>Strongest pairs</h2><ol>")
			for i, p := range r.Pairs {
				mw.raw("<li><figure><figcaption>")
				mw.text(p.Left)
				mw.raw(" &amp; ")
				mw.text(p.Right)
				mw.raw(": r = ")
				mw.raw(strconv.FormatFloat(p.Coefficient, 'f', 4, 64))
				mw.raw("</figcaption>")
				if mw.err != nil {
					return mw.err
				}
				if i < r.Plots {
					plot := Scatter(r.Table.Column(p.LeftIndex), r.Table.Column(p.RightIndex), r.PlotWidth, r.PlotHeight)
					if err := plot.Render(ctx, w); err != nil {
						return err
					}
				}
				mw.raw("</figure></li>")
			}
			mw.raw("</ol>")
		}

		mw.raw("</section>")
		return mw.err
	})
}

// ReportHTML returns the markup of AnalysisReport(r).
func ReportHTML(r Report) string {
	return renderString(AnalysisReport(r))
}
