// Package templates holds the page components served by the web package.
//
// Components write markup through templ so they compose with the render
// package's tables and plots. User-supplied text always goes through
// templ.EscapeString.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const stylesheet = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:64rem;padding:0 1rem;color:#1f2937}
textarea{width:100%;min-height:12rem;font-family:ui-monospace,monospace}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #d1d5db;padding:.25rem .5rem;text-align:right}
.alert{border:1px solid #f87171;background:#fef2f2;padding:.75rem 1rem;margin:1rem 0}
.alert code{color:#6b7280}
figure{margin:.5rem 0}`

// Page wraps body in a complete HTML document.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`+
			templ.EscapeString(title)+`</title><style>`+stylesheet+`</style></head><body>`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// AnalyzeForm renders the CSV input form, prefilled with input.
func AnalyzeForm(input string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>CSV correlation analysis</h1>`+
			`<form method="post" action="/analyze" enctype="multipart/form-data">`+
			`<p><label for="csv">Paste CSV: a header line of column names, then one line of numbers per row.</label></p>`+
			`<textarea id="csv" name="csv" placeholder="age,weight&#10;25,60.5&#10;30,75.2">`+
			templ.EscapeString(input)+`</textarea>`+
			`<p><label>or upload a file <input type="file" name="file" accept=".csv,text/csv,text/plain"></label></p>`+
			`<p><button type="submit">Analyze</button></p></form>`)
		return err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code, detail string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := `<div class="alert" role="alert"><strong>` + templ.EscapeString(message) + `</strong>`
		if action != "" {
			s += ` ` + templ.EscapeString(action)
		}
		if detail != "" {
			s += `<br><span>` + templ.EscapeString(detail) + `</span>`
		}
		s += ` <code>(` + templ.EscapeString(code) + `)</code></div>`
		_, err := io.WriteString(w, s)
		return err
	})
}

// Index is the analysis page: the form followed by result, which may be a
// report, an ErrorAlert, or nil.
func Index(input string, result templ.Component) templ.Component {
	return Page("pcc", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := AnalyzeForm(input).Render(ctx, w); err != nil {
			return err
		}
		if result == nil {
			return nil
		}
		return result.Render(ctx, w)
	}))
}
