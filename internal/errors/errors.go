package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // a parallel sum is outside the tolerance of the sequential sum
	ExitErrorConfig   = 4
	ExitErrorSpeedup  = 5 // --min-speedup was not reached
	ExitErrorCanceled = 130
)

// ConfigError is a bad flag, environment value or flag combination.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps the failure of a summation run.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError names an operation that exceeded Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError is a violated precondition of a summation function, such
// as an odd length for the two-way split or a task count below one. Cause
// holds the package sentinel so callers can match it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error { return e.Cause }

// MemoryError reports an estimated footprint above --memory-limit.
// Available is zero when the free memory was not queried.
type MemoryError struct {
	Requested uint64
	Available uint64
	Limit     uint64
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// SpeedupError reports a parallel strategy slower than --min-speedup.
type SpeedupError struct {
	Strategy string
	Measured float64
	Minimum  float64
}

func (e SpeedupError) Error() string {
	return fmt.Sprintf("strategy %q reached %.2fx speedup, expected at least %.2fx", e.Strategy, e.Measured, e.Minimum)
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies ANSI sequences for status lines. Nil means no color.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError writes a status line for err to out and returns
// the matching exit code. duration, when positive, is appended to the line.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	var red, yellow, reset string
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}
	var after string
	if duration > 0 {
		after = fmt.Sprintf(" after %s%s%s", yellow, duration, reset)
	}

	var (
		timeoutErr TimeoutError
		speedupErr SpeedupError
	)
	switch {
	case errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout).%s The execution limit was reached%s.\n", red, reset, after)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s by user%s.\n", yellow, reset, after)
		return ExitErrorCanceled
	case errors.As(err, &speedupErr):
		fmt.Fprintf(out, "%sStatus: Failure.%s %v\n", red, reset, err)
		return ExitErrorSpeedup
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s An unexpected error occurred: %v\n", red, reset, err)
		return ExitErrorGeneric
	}
}
