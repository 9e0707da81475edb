package input

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()
	a := Generate(10_000, DefaultSeed)
	b := Generate(10_000, DefaultSeed)
	if !slices.Equal(a, b) {
		t.Fatal("same seed should produce the same input")
	}
	if c := Generate(10_000, DefaultSeed+1); slices.Equal(a, c) {
		t.Error("different seeds should produce different input")
	}
}

func TestGenerate_NonPositiveLength(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -5} {
		if got := Generate(n, 1); got == nil || len(got) != 0 {
			t.Errorf("Generate(%d) = %v, want empty non-nil slice", n, got)
		}
	}
}

func TestGenerate_Range_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("values are integers in [1, 99]", prop.ForAll(
		func(n int, seed uint64) bool {
			in := Generate(n, seed)
			if len(in) != n || ContainsZero(in) {
				return false
			}
			for _, v := range in {
				if v < 1 || v > 99 || v != float64(int(v)) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 5000),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestGenerate_CoversRange(t *testing.T) {
	t.Parallel()
	seen := make(map[float64]bool)
	for _, v := range Generate(100_000, DefaultSeed) {
		seen[v] = true
	}
	if len(seen) != 99 {
		t.Errorf("expected all 99 values to appear, saw %d", len(seen))
	}
}

func TestContainsZero(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   []float64
		want bool
	}{
		{nil, false},
		{[]float64{1, 2, 3}, false},
		{[]float64{1, 0, 3}, true},
		{[]float64{-0.0}, true},
	}
	for _, tt := range tests {
		if got := ContainsZero(tt.in); got != tt.want {
			t.Errorf("ContainsZero(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
