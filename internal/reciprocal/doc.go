// Package reciprocal computes the sum of reciprocals of a float64 slice,
// sequentially and with fork-join parallelism.
//
// The parallel strategies share one piece of arithmetic: the chunk
// calculator, which maps a chunk index to a half-open index range so that a
// slice of n elements is covered by c contiguous, non-overlapping ranges of
// at most ceil(n/c) elements. Each range is summed by an independent task;
// tasks only read the input and own their partial sum until the combining
// step reads it after the join.
//
// Available strategies:
//   - Sequential: single pass in index order, the reference result.
//   - TwoWay: split at the midpoint, fork one half, join, add.
//   - ManyTask: split into T chunks, run them on a bounded worker pool,
//     add the partial sums in chunk order.
//   - Recursive: halve ranges until they fall under a cutoff, forking one
//     half at every level.
//
// The input must not contain zeros; a zero element yields +Inf or NaN in
// the sum and is not reported as an error.
package reciprocal
