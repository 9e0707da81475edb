package reciprocal

import (
	"fmt"

	"github.com/agbru/recipsum/internal/parallel"
)

// Summer is a named way of computing the reciprocal sum of a slice.
type Summer interface {
	// Name returns the short identifier used on the command line.
	Name() string
	// Description returns a human-readable label for reports.
	Description() string
	// Sum returns the sum of 1/x over input.
	Sum(input []float64) (float64, error)
}

// Sequential is the single-threaded baseline.
type Sequential struct{}

// Name returns "sequential".
func (Sequential) Name() string { return NameSequential }

// Description returns the report label of the baseline.
func (Sequential) Description() string { return "Sequential (baseline)" }

// Sum calls SequentialSum and never fails.
func (Sequential) Sum(input []float64) (float64, error) {
	return SequentialSum(input), nil
}

// TwoWay forks one half of the input and sums the other inline.
type TwoWay struct{}

// Name returns "twoway".
func (TwoWay) Name() string { return NameTwoWay }

// Description returns the report label of the two-way split.
func (TwoWay) Description() string { return "Two-way fork/join" }

// Sum calls TwoWaySum; an odd-length input is rejected.
func (TwoWay) Sum(input []float64) (float64, error) {
	return TwoWaySum(input)
}

// ManyTask splits the input into Tasks chunks run on a pool of Workers
// goroutines. Zero values select DefaultWorkers() for either field.
type ManyTask struct {
	Tasks   int
	Workers int
}

// Name returns "manytask".
func (m ManyTask) Name() string { return NameManyTask }

// Description includes the resolved task and worker counts.
func (m ManyTask) Description() string {
	return fmt.Sprintf("Many-task fork/join (%d tasks, %d workers)", m.tasks(), m.workers())
}

// Sum calls ManyTaskSumWithWorkers with the resolved counts.
func (m ManyTask) Sum(input []float64) (float64, error) {
	return ManyTaskSumWithWorkers(input, m.tasks(), m.workers())
}

func (m ManyTask) tasks() int   { return parallel.ResolveWorkers(m.Tasks) }
func (m ManyTask) workers() int { return parallel.ResolveWorkers(m.Workers) }

// Recursive forks halves until ranges are at most Cutoff elements long.
// A zero Cutoff selects DefaultRecursiveCutoff.
type Recursive struct {
	Cutoff int
}

// Name returns "recursive".
func (r Recursive) Name() string { return NameRecursive }

// Description includes the resolved cutoff.
func (r Recursive) Description() string {
	return fmt.Sprintf("Recursive fork/join (cutoff %d)", r.cutoff())
}

// Sum calls RecursiveSum with the resolved cutoff.
func (r Recursive) Sum(input []float64) (float64, error) {
	return RecursiveSum(input, r.cutoff())
}

func (r Recursive) cutoff() int {
	if r.Cutoff == 0 {
		return DefaultRecursiveCutoff
	}
	return r.Cutoff
}
