// Package apperrors holds the error types of the benchmark and the mapping
// from errors to process exit codes. Types that carry a cause implement
// Unwrap, so errors.Is and errors.As see through them.
package apperrors
