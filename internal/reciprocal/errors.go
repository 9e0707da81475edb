package reciprocal

import (
	"errors"
	"fmt"

	apperrors "github.com/agbru/recipsum/internal/errors"
)

// Sentinel errors for violated preconditions. They are returned wrapped in
// an apperrors.ValidationError; match them with errors.Is.
var (
	ErrOddLength        = errors.New("input length is odd")
	ErrInvalidTaskCount = errors.New("task count must be at least 1")
	ErrInvalidCutoff    = errors.New("cutoff must be at least 1")
	ErrUnknownStrategy  = errors.New("unknown strategy")
)

func oddLengthError(n int) error {
	return apperrors.ValidationError{
		Field:   "input",
		Message: fmt.Sprintf("length %d is odd, the two-way split needs an even length", n),
		Cause:   ErrOddLength,
	}
}

func taskCountError(taskCount int) error {
	return apperrors.ValidationError{
		Field:   "taskCount",
		Message: fmt.Sprintf("got %d, must be at least 1", taskCount),
		Cause:   ErrInvalidTaskCount,
	}
}

func cutoffError(cutoff int) error {
	return apperrors.ValidationError{
		Field:   "cutoff",
		Message: fmt.Sprintf("got %d, must be at least 1", cutoff),
		Cause:   ErrInvalidCutoff,
	}
}
