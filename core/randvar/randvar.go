// Package randvar provides the random variates the simulation draws:
// exponential waiting times and weighted discrete selection.
package randvar

import (
	"math"
	"math/rand"
)

// Source is the minimal random stream the simulation consumes.
// *math/rand.Rand satisfies it; tests substitute scripted sources.
// A Source must not be shared across concurrent runs.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// New returns a deterministic Source for the given seed.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Exponential draws an exponentially distributed waiting time with the
// given rate (mean 1/rate). The rate must be positive.
func Exponential(src Source, rate float64) float64 {
	u := src.Float64()
	return -math.Log(1-u) / rate
}

// WeightedIndex selects an index with probability proportional to
// weights[i]. Zero-weight entries are never selected. It returns -1 when
// the total weight is not positive.
func WeightedIndex(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	u := src.Float64() * total
	for i, w := range weights {
		u -= w
		if u < 0 {
			return i
		}
	}
	// Floating-point remainder: land on the last selectable entry.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
