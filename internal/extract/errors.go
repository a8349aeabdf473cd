package extract

import "fmt"

// TransportError marks a transient failure talking to the model service:
// connection reset, timeout, service overload. Transport errors are retried
// with exponential backoff before surfacing.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("extract: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError marks model output that does not conform to the schema:
// malformed JSON, a missing required field, an enum value out of range.
// Validation errors are never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "extract: invalid model output: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
