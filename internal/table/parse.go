package table

// parse.go converts comma-separated text into a Table.
//
// The accepted grammar is deliberately small: a header line of comma-separated
// names, then zero or more lines of comma-separated numbers. There is no
// quoting, escaping, or embedded separators. Header names are kept verbatim;
// data fields are trimmed before float parsing. Numbers are decimal literals
// (with optional exponent) or inf/infinity/nan in any case.
//
// Parsing stops at the first bad line. No partial Table is ever returned.

import (
	"errors"
	"strconv"
	"strings"
)

const fieldSeparator = ","

// Parse reads input into a Table.
//
// Errors are always *ParseError values:
//   - NoColumns when input is empty
//   - InvalidNumber with the 1-based line and field position of the first
//     field that is not a float literal
//   - RowWidthMismatch with the 1-based line of the first row whose field
//     count differs from the header
func Parse(input string) (*Table, error) {
	lines := splitLines(input)
	if len(lines) == 0 {
		return nil, &ParseError{Kind: NoColumns}
	}

	columns := strings.Split(lines[0], fieldSeparator)

	rows := make([][]float64, 0, len(lines)-1)
	for i, line := range lines[1:] {
		lineNo := i + 2 // header is line 1

		fields := strings.Split(line, fieldSeparator)
		values := make([]float64, len(fields))
		for j, field := range fields {
			v, err := parseNumber(strings.TrimSpace(field))
			if err != nil {
				return nil, &ParseError{
					Kind:   InvalidNumber,
					Line:   lineNo,
					Column: j + 1,
					Err:    err,
				}
			}
			values[j] = v
		}

		if len(values) != len(columns) {
			return nil, &ParseError{Kind: RowWidthMismatch, Line: lineNo}
		}

		rows = append(rows, values)
	}

	return &Table{columns: columns, rows: rows}, nil
}

// parseNumber parses a decimal float literal. Out-of-range magnitudes
// saturate to ±Inf (or 0) instead of failing. strconv's Go-only syntax,
// hexadecimal mantissas and digit-separating underscores, is rejected.
func parseNumber(field string) (float64, error) {
	unsigned := strings.TrimLeft(field, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") || strings.Contains(field, "_") {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: field, Err: strconv.ErrSyntax}
	}

	v, err := strconv.ParseFloat(field, 64)
	if errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}

// splitLines splits on '\n', dropping one trailing '\r' per line and the
// empty remainder after a final newline.
func splitLines(input string) []string {
	if input == "" {
		return nil
	}

	lines := strings.Split(input, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
