package render

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/JonMunkholm/pcc/internal/correlation"
	"github.com/JonMunkholm/pcc/internal/table"
	"github.com/JonMunkholm/pcc/internal/vecmath"
)

func mustParse(t *testing.T, input string) *table.Table {
	t.Helper()
	tbl, err := table.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tbl
}

func TestTableHTML(t *testing.T) {
	tbl := mustParse(t, "A,B,C\n1,2,3\n4,5,6\n7,8,9\n")

	want := "<table><thead><tr><th>A</th><th>B</th><th>C</th></tr></thead>" +
		"<tbody><tr><td>1</td><td>2</td><td>3</td></tr>" +
		"<tr><td>4</td><td>5</td><td>6</td></tr>" +
		"<tr><td>7</td><td>8</td><td>9</td></tr></tbody></table>"

	if got := TableHTML(tbl); got != want {
		t.Errorf("TableHTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableHTML_EscapesHeaders(t *testing.T) {
	tbl := mustParse(t, "<b>x</b>,a&b\n1,2\n")

	got := TableHTML(tbl)
	if strings.Contains(got, "<b>") {
		t.Errorf("header markup was not escaped: %s", got)
	}
	if !strings.Contains(got, "<th>&lt;b&gt;x&lt;/b&gt;</th>") {
		t.Errorf("escaped header missing: %s", got)
	}
	if !strings.Contains(got, "<th>a&amp;b</th>") {
		t.Errorf("escaped ampersand missing: %s", got)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:      "1",
		60.5:   "60.5",
		-0.125: "-0.125",
		1e21:   "1000000000000000000000",
		0.1:    "0.1",
	}
	for in, want := range tests {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMatrixHTML(t *testing.T) {
	m := correlation.Matrix{{0.5}}
	got := MatrixHTML([]string{"x", "y"}, m)

	for _, want := range []string{
		"<th>x</th><th>y</th>",
		"<tr><th>x</th><td>1.0000</td><td>0.5000</td></tr>",
		"<tr><th>y</th><td></td><td>1.0000</td></tr>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MatrixHTML() missing %q in\n%s", want, got)
		}
	}
}

func TestScatterSVG(t *testing.T) {
	svg, err := ScatterSVG([]float64{0, 5, 10}, []float64{0, 10, 20}, 200, 300)
	if err != nil {
		t.Fatalf("ScatterSVG() error = %v", err)
	}

	for _, want := range []string{
		`<svg width="200" height="300" viewBox="0 0 200 300" xmlns="http://www.w3.org/2000/svg">`,
		`<g transform="translate(50, 250) scale(1, -1)">`,
		`<line x1="50" y1="250" x2="150" y2="250" stroke="black" stroke-width="2" />`,
		`<line x1="50" y1="250" x2="50" y2="50" stroke="black" stroke-width="2" />`,
		`<circle cx="50" cy="50" r="3"`,
		`<circle cx="100" cy="150" r="3"`,
		`<circle cx="150" cy="250" r="3"`,
		"</g>\n</svg>\n",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("ScatterSVG() missing %q in\n%s", want, svg)
		}
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circle count = %d, want 3", got)
	}
}

func TestScatterSVG_ConstantSeries(t *testing.T) {
	svg, err := ScatterSVG([]float64{1, 2}, []float64{4, 4}, 300, 300)
	if err != nil {
		t.Fatalf("ScatterSVG() error = %v", err)
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Errorf("constant series produced non-finite coordinates:\n%s", svg)
	}
	if !strings.Contains(svg, `<circle cx="250" cy="50"`) {
		t.Errorf("expected point on the x axis:\n%s", svg)
	}
}

func TestScatterSVG_SkipsNonFinitePoints(t *testing.T) {
	x := []float64{0, math.NaN(), 10, math.Inf(1), 5}
	y := []float64{0, 5, 20, 1, math.Inf(-1)}

	svg, err := ScatterSVG(x, y, 200, 300)
	if err != nil {
		t.Fatalf("ScatterSVG() error = %v", err)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circle count = %d, want 2:\n%s", got, svg)
	}
	for _, want := range []string{`<circle cx="50" cy="50"`, `<circle cx="150" cy="250"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("ScatterSVG() missing %q in\n%s", want, svg)
		}
	}

	svg, err = ScatterSVG([]float64{math.NaN()}, []float64{1}, 200, 300)
	if err != nil {
		t.Fatalf("ScatterSVG() error = %v", err)
	}
	if strings.Contains(svg, "<circle") {
		t.Errorf("all-NaN series drew points:\n%s", svg)
	}
}

func TestScatterSVG_Errors(t *testing.T) {
	_, err := ScatterSVG([]float64{1, 2}, []float64{1}, 300, 300)
	if !errors.Is(err, vecmath.ErrLengthMismatch) {
		t.Errorf("length mismatch error = %v, want ErrLengthMismatch", err)
	}

	_, err = ScatterSVG([]float64{1}, []float64{1}, 100, 300)
	if !errors.Is(err, ErrCanvasTooSmall) {
		t.Errorf("small canvas error = %v, want ErrCanvasTooSmall", err)
	}
}

func TestScatter_ComponentPropagatesError(t *testing.T) {
	var b strings.Builder
	err := Scatter([]float64{1}, []float64{1, 2}, 300, 300).Render(context.Background(), &b)
	if !errors.Is(err, vecmath.ErrLengthMismatch) {
		t.Errorf("Render() error = %v, want ErrLengthMismatch", err)
	}
	if b.Len() != 0 {
		t.Errorf("Render() wrote %q on error", b.String())
	}
}

func TestReportHTML(t *testing.T) {
	tbl := mustParse(t, "a,b,c\n1,2,3\n2,4,1\n3,6,2\n")
	m, err := correlation.Compute(tbl)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	got := ReportHTML(Report{
		Table:      tbl,
		Matrix:     m,
		Pairs:      correlation.RankPairs(tbl.Columns(), m),
		Plots:      1,
		PlotWidth:  200,
		PlotHeight: 200,
	})

	for _, want := range []string{
		`<section class="analysis">`,
		"<h2>Data</h2><table>",
		`<table class="correlation">`,
		"<figcaption>a &amp; b: r = 1.0000</figcaption><svg",
		"</section>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ReportHTML() missing %q in\n%s", want, got)
		}
	}
	if n := strings.Count(got, "<svg"); n != 1 {
		t.Errorf("scatter count = %d, want 1", n)
	}
	if n := strings.Count(got, "<li>"); n != 3 {
		t.Errorf("pair count = %d, want 3", n)
	}
}

func TestReportHTML_SingleColumn(t *testing.T) {
	tbl := mustParse(t, "only\n1\n2\n")
	got := ReportHTML(Report{Table: tbl, Matrix: correlation.Matrix{}, PlotWidth: 200, PlotHeight: 200})
	if !strings.Contains(got, "At least two columns") {
		t.Errorf("ReportHTML() missing single-column notice:\n%s", got)
	}
}
