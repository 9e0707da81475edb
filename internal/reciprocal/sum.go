package reciprocal

import (
	"sync"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/parallel"
)

// SequentialSum returns the sum of 1/x over input, accumulated in index
// order. It is the reference result the parallel strategies are checked
// against. An empty input sums to 0.
func SequentialSum(input []float64) float64 {
	return sumRange(input, 0, len(input))
}

// TwoWaySum splits input at its midpoint, sums the second half on a new
// goroutine while the caller sums the first half, then adds the two.
// The length of input must be even.
func TwoWaySum(input []float64) (float64, error) {
	if len(input)%2 != 0 {
		return 0, oddLengthError(len(input))
	}
	mid := len(input) / 2
	first := sumTask{input: input, chunk: Chunk{Start: 0, End: mid}}
	second := sumTask{input: input, chunk: Chunk{Start: mid, End: len(input)}}

	var ec parallel.ErrorCollector
	forkJoin(&ec, second.compute, first.compute)

	if err := ec.Err(); err != nil {
		return 0, apperrors.CalculationError{Cause: err}
	}
	return first.value + second.value, nil
}

// ManyTaskSum splits input into taskCount chunks and sums them on the
// default worker pool. See ManyTaskSumWithWorkers.
func ManyTaskSum(input []float64, taskCount int) (float64, error) {
	return ManyTaskSumWithWorkers(input, taskCount, parallel.DefaultWorkers())
}

// ManyTaskSumWithWorkers splits input into taskCount chunks, runs one task
// per chunk with at most workers of them in flight, and adds the partial
// sums in chunk order. workers < 1 selects the default pool size.
//
// taskCount may exceed len(input); the surplus tasks cover empty chunks and
// contribute 0. With taskCount == 1 the result is bit-identical to
// SequentialSum.
func ManyTaskSumWithWorkers(input []float64, taskCount, workers int) (float64, error) {
	if taskCount < 1 {
		return 0, taskCountError(taskCount)
	}
	if taskCount == 1 {
		return SequentialSum(input), nil
	}

	tasks := newTasks(input, taskCount)
	if err := executeTasks(tasks, parallel.ResolveWorkers(workers)); err != nil {
		return 0, apperrors.CalculationError{Cause: err}
	}
	return combine(tasks), nil
}

// RecursiveSum halves the input range until it is no longer than cutoff,
// forking the upper half at every level and summing leaves sequentially.
// A small cutoff on a large input spawns about len(input)/cutoff goroutines.
func RecursiveSum(input []float64, cutoff int) (float64, error) {
	if cutoff < 1 {
		return 0, cutoffError(cutoff)
	}
	var ec parallel.ErrorCollector
	sum := recursiveSum(input, 0, len(input), cutoff, &ec)
	if err := ec.Err(); err != nil {
		return 0, apperrors.CalculationError{Cause: err}
	}
	return sum, nil
}

func recursiveSum(input []float64, lo, hi, cutoff int, ec *parallel.ErrorCollector) float64 {
	if hi-lo <= cutoff {
		return sumRange(input, lo, hi)
	}
	mid := lo + (hi-lo)/2

	var lower, upper float64
	forkJoin(ec,
		func() { upper = recursiveSum(input, mid, hi, cutoff, ec) },
		func() { lower = recursiveSum(input, lo, mid, cutoff, ec) },
	)
	return lower + upper
}

// forkJoin runs forked on a new goroutine and inline on the caller, and
// waits for both. A panic in either half is reported to ec.
func forkJoin(ec *parallel.ErrorCollector, forked, inline func()) {
	var wg sync.WaitGroup
	wg.Add(1)
	parallel.Go(ec, wg.Done, forked)
	parallel.Run(ec, inline)
	wg.Wait()
}
