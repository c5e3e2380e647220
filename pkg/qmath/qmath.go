// Package qmath provides the small amount of vector math used by the
// quantum preparation stage.
package qmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// entropyEpsilon guards the log term for zero components.
const entropyEpsilon = 1e-9

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// Normalize returns a copy of v scaled to unit L2 norm. A zero vector is
// returned unchanged rather than dividing by zero.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	norm := Norm(out)
	if norm == 0 {
		return out
	}

	floats.Scale(1/norm, out)
	return out
}

// EntropyBits computes -sum(x * log2(x + eps)) over the components of v.
// Components are expected to be non-negative.
func EntropyBits(v []float64) float64 {
	entropy := 0.0
	for _, x := range v {
		entropy -= x * math.Log2(x+entropyEpsilon)
	}
	return entropy
}

// Log2Ceil returns ceil(log2(n)) for n > 1, and 0 otherwise.
func Log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(n))))
}

// Clamp bounds x to the [lo, hi] interval.
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
