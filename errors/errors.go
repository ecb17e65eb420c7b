package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling

var (
	// ErrMissingArgument indicates a capability was invoked without a required
	// identifying argument
	ErrMissingArgument = errors.New("missing required argument")

	// ErrNoMatch indicates a name-based lookup found no candidate clearing the
	// similarity threshold
	ErrNoMatch = errors.New("no match found")

	// ErrUpstream indicates a backend service call returned a non-success status
	ErrUpstream = errors.New("upstream service failure")

	// ErrLLMCommunication indicates LLM communication failed
	ErrLLMCommunication = errors.New("llm communication failed")
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

// IsNoMatch checks if error is a no match error
func IsNoMatch(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsMissingArgument checks if error is a missing argument error
func IsMissingArgument(err error) bool {
	return errors.Is(err, ErrMissingArgument)
}

// IsUpstream checks if error is an upstream service failure
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}
