package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/pcc/internal/core"
	"github.com/JonMunkholm/pcc/internal/correlation"
)

func analyze(t *testing.T, input string) *core.Analysis {
	t.Helper()
	a, err := core.NewService(core.Options{}, nil).Analyze(context.Background(), input)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return a
}

func TestParseFormat(t *testing.T) {
	tests := map[string]OutputFormat{
		"":       FormatYAML,
		"yaml":   FormatYAML,
		" JSON ": FormatJSON,
		"table":  FormatTable,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	a := analyze(t, "a,b\n1,2\n2,4\n")

	if err := Output(AnalysisResult{a}, OutputOptions{Format: FormatJSON, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if result["id"] != a.ID.String() {
		t.Errorf("id = %v, want %s", result["id"], a.ID)
	}
	if !strings.Contains(buf.String(), "\n  \"columns\"") {
		t.Errorf("JSON output should be indented, got: %s", buf.String())
	}
}

func TestOutput_YAML(t *testing.T) {
	var buf bytes.Buffer
	a := analyze(t, "a,b\n1,2\n2,4\n")

	if err := Output(AnalysisResult{a}, OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"columns:", "- a", "left: a", "right: b", "coefficient: 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("YAML output missing %q, got:\n%s", want, output)
		}
	}
}

func TestOutput_TableFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Output(map[string]int{"n": 1}, OutputOptions{Format: FormatTable, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "n: 1") {
		t.Errorf("got %q, want YAML", buf.String())
	}
}

func TestOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	sim := SimilarityResult{core.Similarity{Pearson: 1, Cosine: math.NaN()}}

	if err := Output(sim, OutputOptions{Format: FormatJSON, File: path}); err != nil {
		t.Fatalf("Output error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"cosine": null`) {
		t.Errorf("file = %s, want cosine null", data)
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	if err := Output(1, OutputOptions{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestMatrixView(t *testing.T) {
	st := NewStyles(DefaultTheme)
	a := analyze(t, "x,y,z\n1,2,3\n2,4,1\n3,6,2\n")

	view := MatrixView(a.Columns, a.Matrix, st)
	for _, want := range []string{"x", "y", "z", "1.0000", formatCoefficient(a.Matrix.At(0, 2))} {
		if !strings.Contains(view, want) {
			t.Errorf("MatrixView missing %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines < 5 {
		t.Errorf("MatrixView has %d lines, want a header and 3 rows:\n%s", lines, view)
	}

	if got := MatrixView([]string{"only"}, correlation.Matrix{}, st); !strings.Contains(got, "At least two columns") {
		t.Errorf("MatrixView(single) = %q", got)
	}
}

func TestPairsView(t *testing.T) {
	st := NewStyles(DefaultTheme)
	pairs := []correlation.Pair{
		{Left: "a", Right: "b", Coefficient: -0.9},
		{Left: "a", Right: "c", Coefficient: math.NaN()},
	}

	view := PairsView(pairs, st)
	for _, want := range []string{" 1. a & b", "r = -0.9000", " 2. a & c", "r = n/a"} {
		if !strings.Contains(view, want) {
			t.Errorf("PairsView missing %q:\n%s", want, view)
		}
	}
	if got := PairsView(nil, st); !strings.Contains(got, "No column pairs") {
		t.Errorf("PairsView(nil) = %q", got)
	}
}

func TestAnalysisResult_View(t *testing.T) {
	var buf bytes.Buffer
	a := analyze(t, "a,b\n1,2\n2,4\n")

	if err := Output(AnalysisResult{a}, OutputOptions{Format: FormatTable, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	for _, want := range []string{"Correlation matrix", "2 columns, 2 rows", "Strongest pairs", "a & b"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestWriteFile(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFile(&buf, "", "<svg/>"); err != nil || buf.String() != "<svg/>" {
		t.Errorf("WriteFile(stdout) = %q, %v", buf.String(), err)
	}

	path := filepath.Join(t.TempDir(), "plot.svg")
	if err := WriteFile(&buf, path, "<svg/>"); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); string(data) != "<svg/>" {
		t.Errorf("file = %q", data)
	}
}
