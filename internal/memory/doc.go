// Package memory estimates the footprint of a benchmark run and controls the
// garbage collector while strategies are being timed.
package memory
