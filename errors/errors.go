package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrInvalidInput indicates missing or malformed caller input
	ErrInvalidInput = errors.New("invalid input")

	// ErrEvaluation indicates the expression evaluator rejected or failed
	// on an input. It never crosses the reply service boundary; the
	// calculation rule converts it into a canned sentence.
	ErrEvaluation = errors.New("expression evaluation failed")

	// ErrInternal indicates an unexpected fault recovered at the reply
	// service boundary
	ErrInternal = errors.New("internal error")
)

// WrapError wraps an error with context message and stack
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsEvaluation checks if error is an evaluation error
func IsEvaluation(err error) bool {
	return errors.Is(err, ErrEvaluation)
}

// IsInternal checks if error is an internal fault
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
