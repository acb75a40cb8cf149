// Package vecmath provides similarity measures over pairs of numeric vectors.
//
// Functions here have no dependency on tables; any two equal-length
// []float64 values can be compared. Unequal lengths are reported as a
// *LengthMismatchError rather than truncated.
package vecmath

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operation names carried by LengthMismatchError.
const (
	opPearson = "pearson"
	opCosine  = "cosine similarity"
	opDot     = "dot product"
)

// ErrLengthMismatch matches every *LengthMismatchError via errors.Is.
var ErrLengthMismatch = errors.New("vectors must have the same length")

// LengthMismatchError reports which operation received vectors of
// different lengths.
type LengthMismatchError struct {
	Op    string
	Left  int
	Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: %s (got %d and %d)", e.Op, ErrLengthMismatch, e.Left, e.Right)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

func checkLengths(op string, a, b []float64) error {
	if len(a) != len(b) {
		return &LengthMismatchError{Op: op, Left: len(a), Right: len(b)}
	}
	return nil
}

// Pearson returns the Pearson correlation coefficient of x and y:
//
//	r = (n·Σxy − Σx·Σy) / (sqrt(n·Σx² − (Σx)²) · sqrt(n·Σy² − (Σy)²))
//
// A constant (or empty) series on either side makes the denominator zero;
// the result is then 0 instead of NaN. Rounding overshoot is clamped to
// [-1, 1].
func Pearson(x, y []float64) (float64, error) {
	if err := checkLengths(opPearson, x, y); err != nil {
		return 0, err
	}
	if isConstant(x) || isConstant(y) {
		return 0, nil
	}

	n := float64(len(x))
	sumX := floats.Sum(x)
	sumY := floats.Sum(y)
	sumXX := floats.Dot(x, x)
	sumYY := floats.Dot(y, y)
	sumXY := floats.Dot(x, y)

	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY
	// Rounding can leave a non-positive term for nearly constant input.
	if varX <= 0 || varY <= 0 {
		return 0, nil
	}

	// Roots are taken separately so the product cannot overflow or
	// underflow. Equal spreads (always the case for x against itself) skip
	// the roots entirely, keeping Pearson(x, x) exactly 1.
	den := varX
	if varX != varY {
		den = math.Sqrt(varX) * math.Sqrt(varY)
	}
	if den == 0 {
		return 0, nil
	}

	return math.Max(-1, math.Min(1, (n*sumXY-sumX*sumY)/den)), nil
}

// CosineSimilarity returns dot(a, b) / (‖a‖·‖b‖).
//
// There is no fallback for zero vectors: a zero magnitude on either side
// yields NaN or ±Inf. Callers that may pass zero vectors must filter them.
func CosineSimilarity(a, b []float64) (float64, error) {
	if err := checkLengths(opCosine, a, b); err != nil {
		return 0, err
	}
	return floats.Dot(a, b) / (Magnitude(a) * Magnitude(b)), nil
}

// Dot returns the dot product of a and b.
func Dot(a, b []float64) (float64, error) {
	if err := checkLengths(opDot, a, b); err != nil {
		return 0, err
	}
	return floats.Dot(a, b), nil
}

// Magnitude returns the Euclidean length of a.
func Magnitude(a []float64) float64 {
	return math.Sqrt(floats.Dot(a, a))
}

// isConstant reports whether every element equals the first.
// Empty and single-element slices are constant.
func isConstant(v []float64) bool {
	for _, x := range v[min(1, len(v)):] {
		if x != v[0] {
			return false
		}
	}
	return true
}
