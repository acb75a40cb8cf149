package render

// svg.go draws two equal-length series as a scatter plot.
//
// Geometry: a 50px margin on every side, an x axis along the bottom margin
// and a y axis along the left margin. Points are drawn inside a group whose
// transform flips the y axis so larger values appear higher.

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/JonMunkholm/pcc/internal/vecmath"
	"github.com/a-h/templ"
)

const (
	plotMargin  = 50
	plotPadding = 2 * plotMargin
)

// ErrCanvasTooSmall is returned when the requested canvas leaves no room
// for the plot area inside the margins.
var ErrCanvasTooSmall = errors.New("scatter canvas too small")

// ScatterSVG renders (x[i], y[i]) points as an SVG document of the given
// pixel size. x and y must have equal lengths, and width and height must
// both exceed the 100px margin allowance.
//
// A series with no spread (all values equal) is drawn on its axis origin.
// Points with a NaN or infinite coordinate are left out.
func ScatterSVG(x, y []float64, width, height int) (string, error) {
	if len(x) != len(y) {
		return "", &vecmath.LengthMismatchError{Op: "scatter plot", Left: len(x), Right: len(y)}
	}
	if width <= plotPadding || height <= plotPadding {
		return "", fmt.Errorf("%w: %dx%d, need more than %dx%d",
			ErrCanvasTooSmall, width, height, plotPadding, plotPadding)
	}

	xMin, xScale := axisScale(x, width-plotPadding)
	yMin, yScale := axisScale(y, height-plotPadding)

	var b strings.Builder
	fmt.Fprintf(&b, "<svg width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		width, height, width, height)
	fmt.Fprintf(&b, "<g transform=\"translate(%d, %d) scale(1, -1)\">\n", plotMargin, height-plotMargin)

	fmt.Fprintf(&b, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"black\" stroke-width=\"2\" />\n",
		plotMargin, height-plotMargin, width-plotMargin, height-plotMargin)
	fmt.Fprintf(&b, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"black\" stroke-width=\"2\" />\n",
		plotMargin, height-plotMargin, plotMargin, plotMargin)

	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			continue
		}
		cx := int((x[i]-xMin)*xScale) + plotMargin
		cy := int((y[i]-yMin)*yScale) + plotMargin
		fmt.Fprintf(&b, "<circle cx=\"%d\" cy=\"%d\" r=\"3\" fill=\"blue\" stroke=\"black\" opacity=\"0.3\" stroke-width=\"1\" />\n",
			cx, cy)
	}

	b.WriteString("</g>\n")
	b.WriteString("</svg>\n")
	return b.String(), nil
}

// Scatter wraps ScatterSVG as a component for embedding in HTML pages.
func Scatter(x, y []float64, width, height int) templ.Component {
	svg, err := ScatterSVG(x, y, width, height)
	return templ.Raw(svg, err)
}

// axisScale returns the minimum of the finite values and the
// pixels-per-unit factor mapping their range onto span pixels. A zero or
// overflowing range scales to 0 so every point lands on the origin.
func axisScale(values []float64, span int) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0
	}

	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) {
		return lo, 0
	}
	return lo, float64(span) / rng
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
