// Package parallel holds the concurrency primitives shared by the summation
// strategies: the worker-pool sizing policy, a first-error collector for
// forked goroutines, and conversion of recovered panics into errors.
package parallel
