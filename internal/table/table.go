// Package table holds the in-memory numeric table parsed from CSV text.
//
// A Table is built once, either by Parse or by New, and is never mutated
// afterward. Every row has the same width as the header; the constructors
// enforce this and the accessors rely on it without re-checking.
package table

import "fmt"

// Table is an immutable set of named numeric columns stored row-major.
// Column names keep the header order and may repeat.
type Table struct {
	columns []string
	rows    [][]float64
}

// New builds a Table from a header and row-major data.
// Returns ErrRaggedRows if any row's width differs from len(columns).
// The inputs are copied; later changes to them do not affect the Table.
func New(columns []string, rows [][]float64) (*Table, error) {
	data := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, header has %d: %w",
				i, len(row), len(columns), ErrRaggedRows)
		}
		data[i] = append([]float64(nil), row...)
	}

	return &Table{
		columns: append([]string(nil), columns...),
		rows:    data,
	}, nil
}

// NumColumns returns the width of the data, taken from the first row.
// A table without rows reports 0 regardless of its header.
func (t *Table) NumColumns() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Title returns the header name of column index.
// Panics if index is outside the header.
func (t *Table) Title(index int) string {
	if index < 0 || index >= len(t.columns) {
		panic(fmt.Sprintf("table: title index %d out of range [0,%d)", index, len(t.columns)))
	}
	return t.columns[index]
}

// Columns returns a copy of the header names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Column returns a newly allocated slice holding the value at index from
// every row, in row order. Panics if index is outside the row width.
func (t *Table) Column(index int) []float64 {
	if len(t.rows) > 0 && (index < 0 || index >= len(t.rows[0])) {
		panic(fmt.Sprintf("table: column index %d out of range [0,%d)", index, len(t.rows[0])))
	}

	values := make([]float64, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[index]
	}
	return values
}

// Row returns a copy of the row at index.
// Panics if index is outside the data.
func (t *Table) Row(index int) []float64 {
	if index < 0 || index >= len(t.rows) {
		panic(fmt.Sprintf("table: row index %d out of range [0,%d)", index, len(t.rows)))
	}
	return append([]float64(nil), t.rows[index]...)
}

// IndexOf returns the position of the first column named name, or -1.
func (t *Table) IndexOf(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}
