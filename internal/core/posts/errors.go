package posts

import "errors"

// Sentinel errors for common post operations
var (
	// ErrPostNotFound is returned when a post is missing or soft-deleted
	ErrPostNotFound = errors.New("Post not found")

	// ErrInvalidPassword is returned when the provided password does not
	// match the stored hash. Kept distinct from not-found so handlers can
	// answer 403 rather than 404.
	ErrInvalidPassword = errors.New("Invalid password")
)

// ValidationError represents an entity invariant or request-shape violation.
// The message is client-facing and stable; handlers surface it verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}
