package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type PriceTrackerError struct {
	Message string
	Cause   error
}

func (e *PriceTrackerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PriceTrackerError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// ValidationError signals a request that failed the normalizer's invariants.
// Never retried internally; the boundary maps it to a rejected request.
type ValidationError struct{ PriceTrackerError }

// CollaboratorError signals a failed catalog or event-log read.
// The boundary maps it to a generic internal error without leaking internals.
type CollaboratorError struct{ PriceTrackerError }

// -----------------------------------------------------------------------------

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{PriceTrackerError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------

func NewCollaboratorError(message string, cause error) *CollaboratorError {
	return &CollaboratorError{PriceTrackerError{Message: message, Cause: cause}}
}
