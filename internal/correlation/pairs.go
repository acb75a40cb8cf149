package correlation

import (
	"math"
	"sort"
)

// Pair is one column pair with its coefficient.
type Pair struct {
	Left        string  `json:"left" yaml:"left"`
	Right       string  `json:"right" yaml:"right"`
	LeftIndex   int     `json:"left_index" yaml:"left_index"`
	RightIndex  int     `json:"right_index" yaml:"right_index"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// RankPairs flattens m into pairs ordered by descending |coefficient|.
// Ties keep matrix order (by left index, then right index).
// names supplies column labels; missing names are left empty.
func RankPairs(names []string, m Matrix) []Pair {
	pairs := make([]Pair, 0, len(m)*(len(m)+1)/2)
	for i, row := range m {
		for off, r := range row {
			j := i + 1 + off
			pairs = append(pairs, Pair{
				Left:        nameAt(names, i),
				Right:       nameAt(names, j),
				LeftIndex:   i,
				RightIndex:  j,
				Coefficient: r,
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Coefficient) > math.Abs(pairs[b].Coefficient)
	})
	return pairs
}

// Strongest returns the first n pairs of RankPairs, or all of them when
// n <= 0 or n exceeds the pair count.
func Strongest(names []string, m Matrix, n int) []Pair {
	pairs := RankPairs(names, m)
	if n > 0 && n < len(pairs) {
		return pairs[:n]
	}
	return pairs
}

func nameAt(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return ""
}
