package reciprocal

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// nonZeroSlice generates slices of values in [0.5, 100].
func nonZeroSlice() gopter.Gen {
	return gen.SliceOf(gen.Float64Range(0.5, 100))
}

// TestParallelSums_PropertyBased verifies that every parallel strategy
// agrees with the sequential sum within DefaultTolerance on arbitrary input.
func TestParallelSums_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("two-way matches sequential", prop.ForAll(
		func(a []float64) bool {
			if len(a)%2 == 1 {
				a = a[:len(a)-1]
			}
			got, err := TwoWaySum(a)
			return err == nil && math.Abs(got-SequentialSum(a)) <= DefaultTolerance
		},
		nonZeroSlice(),
	))

	properties.Property("many-task matches sequential", prop.ForAll(
		func(a []float64, tasks int) bool {
			got, err := ManyTaskSum(a, tasks)
			return err == nil && math.Abs(got-SequentialSum(a)) <= DefaultTolerance
		},
		nonZeroSlice(),
		gen.IntRange(1, 64),
	))

	properties.Property("single task is bit-identical to sequential", prop.ForAll(
		func(a []float64) bool {
			got, err := ManyTaskSum(a, 1)
			return err == nil && got == SequentialSum(a)
		},
		nonZeroSlice(),
	))

	properties.Property("recursive matches sequential", prop.ForAll(
		func(a []float64, cutoff int) bool {
			got, err := RecursiveSum(a, cutoff)
			return err == nil && math.Abs(got-SequentialSum(a)) <= DefaultTolerance
		},
		nonZeroSlice(),
		gen.IntRange(1, 32),
	))

	properties.Property("input is left unmodified", prop.ForAll(
		func(a []float64, tasks int) bool {
			before := append([]float64(nil), a...)
			if _, err := ManyTaskSum(a, tasks); err != nil {
				return false
			}
			for i := range a {
				if a[i] != before[i] {
					return false
				}
			}
			return true
		},
		nonZeroSlice(),
		gen.IntRange(1, 16),
	))

	properties.TestingRun(t)
}
