package filter

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures. ValidationError wraps one of
// these, so callers can classify with errors.Is while still reporting the
// offending field.
var (
	// ErrInvalidParameter reports a malformed kernel size, threshold,
	// sigma, or direction value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidThresholdOrder reports a Canny upper threshold below the
	// lower threshold. Reversed thresholds are rejected, never swapped.
	ErrInvalidThresholdOrder = errors.New("upper threshold below lower threshold")

	// ErrUnknownParameter reports a parameter name the active algorithm
	// does not define.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// ValidationError identifies the parameter field that failed validation.
type ValidationError struct {
	// Field is the parameter name, e.g. "kernelSize".
	Field string

	// Value is the rejected value.
	Value float64

	// Reason is a human-readable constraint description.
	Reason string

	err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Unwrap exposes the sentinel error for errors.Is classification.
func (e *ValidationError) Unwrap() error {
	return e.err
}

func invalidParam(field string, value float64, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason, err: ErrInvalidParameter}
}
