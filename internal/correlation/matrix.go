// Package correlation computes pairwise Pearson coefficients between the
// columns of a table.
//
// The primary result is the upper triangle of the correlation matrix, stored
// without the diagonal: for k columns there are k-1 rows and row i holds the
// k-1-i coefficients corr(column i, column j) for j = i+1..k-1.
//
// Results are recomputed from scratch on every call; nothing is cached.
package correlation

import (
	"fmt"

	"github.com/JonMunkholm/pcc/internal/vecmath"
	"gonum.org/v1/gonum/mat"
)

// Columnar is the read access Compute needs from a table.
// *table.Table satisfies it.
type Columnar interface {
	NumColumns() int
	Column(index int) []float64
}

// Matrix is the upper triangle of a correlation matrix without its diagonal.
// Matrix[i][j] is the coefficient between columns i and i+1+j.
type Matrix [][]float64

// Compute returns the pairwise Pearson coefficients of every column pair
// in src. Tables with fewer than two columns yield an empty Matrix.
func Compute(src Columnar) (Matrix, error) {
	k := src.NumColumns()
	if k <= 1 {
		return Matrix{}, nil
	}

	result := make(Matrix, 0, k-1)
	for i := 0; i < k-1; i++ {
		left := src.Column(i)
		row := make([]float64, 0, k-1-i)
		for j := i + 1; j < k; j++ {
			r, err := vecmath.Pearson(left, src.Column(j))
			if err != nil {
				return nil, fmt.Errorf("correlation of columns %d and %d: %w", i, j, err)
			}
			row = append(row, r)
		}
		result = append(result, row)
	}

	return result, nil
}

// Size returns the number of columns the matrix was computed from.
func (m Matrix) Size() int {
	if len(m) == 0 {
		return 0
	}
	return len(m) + 1
}

// At returns the coefficient between columns i and j in either order.
// The diagonal is 1. Panics if either index is outside [0, Size()).
func (m Matrix) At(i, j int) float64 {
	n := m.Size()
	if i < 0 || j < 0 || i >= n || j >= n {
		panic(fmt.Sprintf("correlation: index (%d,%d) out of range for %d columns", i, j, n))
	}
	if i == j {
		return 1
	}
	if i > j {
		i, j = j, i
	}
	return m[i][j-i-1]
}

// Dense expands the triangle into a full symmetric k×k matrix with a unit
// diagonal. Returns nil when the matrix covers fewer than two columns.
func (m Matrix) Dense() *mat.SymDense {
	n := m.Size()
	if n == 0 {
		return nil
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		sym.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			sym.SetSym(i, j, m[i][j-i-1])
		}
	}
	return sym
}
