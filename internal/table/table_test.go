package table

import (
	"errors"
	"reflect"
	"testing"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		[]string{"A", "B", "C"},
		[][]float64{
			{1, 2, 3},
			{4, 5, 6},
			{7, 8, 9},
			{7, 8, 9},
		},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

func TestTable_NumColumns(t *testing.T) {
	tbl := sampleTable(t)
	if got := tbl.NumColumns(); got != 3 {
		t.Errorf("NumColumns() = %d, want 3", got)
	}
}

func TestTable_NumColumnsComesFromData(t *testing.T) {
	tbl, err := Parse("a,b,c\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.NumColumns(); got != 0 {
		t.Errorf("NumColumns() on table without rows = %d, want 0", got)
	}
	if got := len(tbl.Columns()); got != 3 {
		t.Errorf("len(Columns()) = %d, want 3", got)
	}
}

func TestTable_Column(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		index int
		want  []float64
	}{
		{0, []float64{1, 4, 7, 7}},
		{1, []float64{2, 5, 8, 8}},
		{2, []float64{3, 6, 9, 9}},
	}
	for _, tt := range tests {
		if got := tbl.Column(tt.index); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Column(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestTable_ColumnIsACopy(t *testing.T) {
	tbl := sampleTable(t)

	col := tbl.Column(0)
	col[0] = 100

	if got := tbl.Column(0)[0]; got != 1 {
		t.Errorf("mutating extracted column changed table: Column(0)[0] = %v, want 1", got)
	}
	row := tbl.Row(0)
	row[1] = 100
	if got := tbl.Row(0)[1]; got != 2 {
		t.Errorf("mutating extracted row changed table: Row(0)[1] = %v, want 2", got)
	}
}

func TestTable_Title(t *testing.T) {
	tbl := sampleTable(t)
	for i, want := range []string{"A", "B", "C"} {
		if got := tbl.Title(i); got != want {
			t.Errorf("Title(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestTable_IndexOf(t *testing.T) {
	tbl, err := Parse("x,y,x\n1,2,3\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := tbl.IndexOf("x"); got != 0 {
		t.Errorf("IndexOf(x) = %d, want 0", got)
	}
	if got := tbl.IndexOf("y"); got != 1 {
		t.Errorf("IndexOf(y) = %d, want 1", got)
	}
	if got := tbl.IndexOf("z"); got != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", got)
	}
}

func TestTable_OutOfRangePanics(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name string
		fn   func()
	}{
		{"title negative", func() { tbl.Title(-1) }},
		{"title past header", func() { tbl.Title(3) }},
		{"column past width", func() { tbl.Column(3) }},
		{"column negative", func() { tbl.Column(-1) }},
		{"row past data", func() { tbl.Row(4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestNew_RejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrRaggedRows) {
		t.Fatalf("New() error = %v, want ErrRaggedRows", err)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	cols := []string{"a"}
	rows := [][]float64{{1}}
	tbl, err := New(cols, rows)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cols[0] = "changed"
	rows[0][0] = 42

	if got := tbl.Title(0); got != "a" {
		t.Errorf("Title(0) = %q after caller mutation, want %q", got, "a")
	}
	if got := tbl.Column(0)[0]; got != 1 {
		t.Errorf("Column(0)[0] = %v after caller mutation, want 1", got)
	}
}
