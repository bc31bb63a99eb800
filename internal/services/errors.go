package services

import "errors"

// Sentinel errors returned by the services. Handlers map them onto HTTP
// statuses: ErrNotFound -> 404, ErrForbidden -> 403, ErrConflict -> 400.
var (
	ErrNotFound  = errors.New("group not found")
	ErrForbidden = errors.New("you are not the creator of this group")
	ErrConflict  = errors.New("you have already requested or joined this group")
)

// ValidationError reports a missing or malformed required field. It maps
// to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
