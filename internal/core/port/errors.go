package port

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the ports. The HTTP layer maps these
// onto status codes; use cases and repositories wrap them with context.
var (
	// ErrUnauthenticated means no valid session accompanied the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotEntitled means the caller is authenticated but lacks the
	// plan or role required for the action. It is distinct from
	// ErrUnauthenticated so the boundary can answer 403 vs 401.
	ErrNotEntitled = errors.New("not entitled")

	// ErrNotFound covers both absent resources and resources owned by
	// someone else; the two are deliberately indistinguishable to the
	// caller.
	ErrNotFound = errors.New("not found")

	// ErrAccountNotFound is raised by reconciliation lookups that miss.
	// It is non-fatal: the webhook endpoint logs it and still
	// acknowledges the event.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSignatureInvalid means webhook signature verification failed;
	// the event must not be reconciled.
	ErrSignatureInvalid = errors.New("invalid webhook signature")

	// ErrDuplicateUsername is returned when registering a taken handle.
	ErrDuplicateUsername = errors.New("username already taken")
)

// ValidationError carries a field-level message for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a field-level validation error.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
