package converters

import (
	"errors"
	"fmt"
)

// Sentinel errors for model IO.
var (
	// ErrFormat indicates an unsupported extension or undecodable content.
	ErrFormat = errors.New("converters: unsupported model format")

	// ErrNotFound indicates the model path does not exist.
	ErrNotFound = errors.New("converters: model file not found")
)

// ValidationError reports the first semantic problem of a decoded model.
type ValidationError struct {
	// Field is the offending location, e.g. "reactions[2].lower_bound".
	Field string
	// Msg is the human-readable problem.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("Error reading model: %s", e.Msg)
	}
	return fmt.Sprintf("Error reading model: %s: %s", e.Field, e.Msg)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
