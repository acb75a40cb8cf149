// Package render turns tables, correlation matrices and numeric series into
// display markup.
//
// HTML output is produced as templ components so the web layer can compose
// them into pages; the *HTML helpers render a component to a string for
// callers that only need the markup. Nothing here mutates its inputs.
package render

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/pcc/internal/correlation"
	"github.com/JonMunkholm/pcc/internal/table"
	"github.com/a-h/templ"
)

// Table renders t as an HTML table: one header cell per column name and
// one data row per table row.
func Table(t *table.Table) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		mw := &markupWriter{w: w}

		mw.raw("<table><thead><tr>")
		for _, name := range t.Columns() {
			mw.raw("<th>")
			mw.text(name)
			mw.raw("</th>")
		}
		mw.raw("</tr></thead><tbody>")
		for i := 0; i < t.NumRows(); i++ {
			mw.raw("<tr>")
			for _, v := range t.Row(i) {
				mw.raw("<td>")
				mw.raw(FormatFloat(v))
				mw.raw("</td>")
			}
			mw.raw("</tr>")
		}
		mw.raw("</tbody></table>")

		return mw.err
	})
}

// TableHTML returns the markup of Table(t).
func TableHTML(t *table.Table) string {
	return renderString(Table(t))
}

// CorrelationMatrix renders m as a square HTML table labelled with names.
// Cells below the diagonal are left empty; the diagonal shows 1.
func CorrelationMatrix(names []string, m correlation.Matrix) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		mw := &markupWriter{w: w}
		n := m.Size()

		mw.raw(`<table class="correlation"><thead><tr><th></th>`)
		for i := 0; i < n; i++ {
			mw.raw("<th>")
			mw.text(label(names, i))
			mw.raw("</th>")
		}
		mw.raw("</tr></thead><tbody>")
		for i := 0; i < n; i++ {
			mw.raw("<tr><th>")
			mw.text(label(names, i))
			mw.raw("</th>")
			for j := 0; j < n; j++ {
				if j < i {
					mw.raw("<td></td>")
					continue
				}
				mw.raw("<td>")
				mw.raw(strconv.FormatFloat(m.At(i, j), 'f', 4, 64))
				mw.raw("</td>")
			}
			mw.raw("</tr>")
		}
		mw.raw("</tbody></table>")

		return mw.err
	})
}

// MatrixHTML returns the markup of CorrelationMatrix(names, m).
func MatrixHTML(names []string, m correlation.Matrix) string {
	return renderString(CorrelationMatrix(names, m))
}

// FormatFloat formats v in its shortest exact decimal form, without an
// exponent and without a trailing ".0" for integral values.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func label(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return strconv.Itoa(i)
}

func renderString(c templ.Component) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = c.Render(context.Background(), &b)
	return b.String()
}

// markupWriter keeps the first write error so components can emit markup
// without checking after every call.
type markupWriter struct {
	w   io.Writer
	err error
}

func (m *markupWriter) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markupWriter) text(s string) {
	m.raw(templ.EscapeString(s))
}
