package core

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null. Parsed input
// may legally contain "NaN" or "inf", and cosine similarity of a zero
// vector is NaN; encoding/json rejects all of those.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func numbers(v []float64) []Number {
	out := make([]Number, len(v))
	for i, f := range v {
		out[i] = Number(f)
	}
	return out
}

func numberGrid(v [][]float64) [][]Number {
	out := make([][]Number, len(v))
	for i, row := range v {
		out[i] = numbers(row)
	}
	return out
}

type pairJSON struct {
	Left        string `json:"left"`
	Right       string `json:"right"`
	LeftIndex   int    `json:"left_index"`
	RightIndex  int    `json:"right_index"`
	Coefficient Number `json:"coefficient"`
}

type analysisJSON struct {
	ID        string     `json:"id"`
	Columns   []string   `json:"columns"`
	Rows      [][]Number `json:"rows"`
	Matrix    [][]Number `json:"matrix"`
	Pairs     []pairJSON `json:"pairs"`
	CreatedAt time.Time  `json:"created_at"`
}

// MarshalJSON encodes a with non-finite values as null.
func (a Analysis) MarshalJSON() ([]byte, error) {
	pairs := make([]pairJSON, len(a.Pairs))
	for i, p := range a.Pairs {
		pairs[i] = pairJSON{
			Left:        p.Left,
			Right:       p.Right,
			LeftIndex:   p.LeftIndex,
			RightIndex:  p.RightIndex,
			Coefficient: Number(p.Coefficient),
		}
	}

	columns := a.Columns
	if columns == nil {
		columns = []string{}
	}

	return json.Marshal(analysisJSON{
		ID:        a.ID.String(),
		Columns:   columns,
		Rows:      numberGrid(a.Rows),
		Matrix:    numberGrid(a.Matrix),
		Pairs:     pairs,
		CreatedAt: a.CreatedAt,
	})
}

// MarshalJSON encodes s with non-finite values as null.
func (s Similarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Pearson Number `json:"pearson"`
		Cosine  Number `json:"cosine"`
	}{Number(s.Pearson), Number(s.Cosine)})
}
