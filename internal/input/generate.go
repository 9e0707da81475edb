// Package input builds the arrays the benchmark sums.
package input

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrZeroElement is the cause reported when an input holds a zero.
var ErrZeroElement = errors.New("input contains a zero element")

// DefaultSeed is the seed used when none is configured.
const DefaultSeed uint64 = 314

// Generate returns n values drawn uniformly from the integers 1..99.
// The same (n, seed) pair always yields the same slice.
func Generate(n int, seed uint64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(rng.IntN(99) + 1)
	}
	return out
}

// ContainsZero reports whether any element is zero, which would make the
// reciprocal sum infinite or NaN.
func ContainsZero(input []float64) bool {
	return slices.Contains(input, 0)
}
