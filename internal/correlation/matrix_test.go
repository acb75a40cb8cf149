package correlation

import (
	"testing"

	"github.com/JonMunkholm/pcc/internal/table"
	"github.com/JonMunkholm/pcc/internal/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ragged reports a fixed width but returns columns of differing lengths,
// which a parsed table can never do.
type ragged struct{}

func (ragged) NumColumns() int { return 2 }
func (ragged) Column(i int) []float64 {
	if i == 0 {
		return []float64{1, 2, 3}
	}
	return []float64{1, 2}
}

func mustTable(t *testing.T, cols []string, rows [][]float64) *table.Table {
	t.Helper()
	tbl, err := table.New(cols, rows)
	require.NoError(t, err)
	return tbl
}

func TestCompute_DegenerateAndIdenticalColumns(t *testing.T) {
	tbl := mustTable(t, []string{"A", "B", "C"}, [][]float64{
		{1, 0, 1},
		{4, 0, 4},
		{7, 0, 7},
		{7, 0, 7},
	})

	m, err := Compute(tbl)
	require.NoError(t, err)

	require.Len(t, m, 2)
	require.Len(t, m[0], 2)
	require.Len(t, m[1], 1)
	assert.Equal(t, 0.0, m[0][0])
	assert.Equal(t, 1.0, m[0][1])
	assert.Equal(t, 0.0, m[1][0])
}

func TestCompute_Shape(t *testing.T) {
	for k := 0; k <= 6; k++ {
		cols := make([]string, k)
		rows := make([][]float64, 3)
		for r := range rows {
			rows[r] = make([]float64, k)
			for c := range rows[r] {
				rows[r][c] = float64((r+1)*(c+2) + r*r)
			}
		}

		m, err := Compute(mustTable(t, cols, rows))
		require.NoError(t, err)
		require.NotNil(t, m)

		wantRows := k - 1
		if k <= 1 {
			wantRows = 0
		}
		require.Len(t, m, wantRows, "k=%d", k)
		for i, row := range m {
			assert.Len(t, row, k-1-i, "k=%d row=%d", k, i)
		}
	}
}

func TestCompute_NoRows(t *testing.T) {
	tbl, err := table.Parse("a,b,c\n")
	require.NoError(t, err)

	m, err := Compute(tbl)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestCompute_MatchesPearson(t *testing.T) {
	tbl, err := table.Parse("x,y,z\n1,2,9\n2,1,7\n3,4,8\n4,3,1\n5,5,0\n")
	require.NoError(t, err)

	m, err := Compute(tbl)
	require.NoError(t, err)

	for i := 0; i < tbl.NumColumns()-1; i++ {
		for j := i + 1; j < tbl.NumColumns(); j++ {
			want, err := vecmath.Pearson(tbl.Column(i), tbl.Column(j))
			require.NoError(t, err)
			assert.Equal(t, want, m[i][j-i-1], "pair (%d,%d)", i, j)
		}
	}
	assert.InDelta(t, 0.8, m[0][0], 1e-12)
}

func TestCompute_PropagatesLengthMismatch(t *testing.T) {
	_, err := Compute(ragged{})
	require.Error(t, err)
	assert.ErrorIs(t, err, vecmath.ErrLengthMismatch)
	assert.Contains(t, err.Error(), "columns 0 and 1")
}

func TestMatrix_AtAndDense(t *testing.T) {
	m := Matrix{
		{0.5, -0.25},
		{0.75},
	}

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 1.0, m.At(1, 1))
	assert.Equal(t, 0.5, m.At(0, 1))
	assert.Equal(t, 0.5, m.At(1, 0))
	assert.Equal(t, -0.25, m.At(2, 0))
	assert.Equal(t, 0.75, m.At(1, 2))
	assert.Panics(t, func() { m.At(3, 0) })

	d := m.Dense()
	require.NotNil(t, d)
	assert.Equal(t, 3, d.SymmetricDim())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, m.At(i, j), d.At(i, j), "(%d,%d)", i, j)
		}
	}

	assert.Nil(t, Matrix{}.Dense())
	assert.Equal(t, 0, Matrix{}.Size())
}
