package comments

import "errors"

// ErrParentCommentNotFound is returned when the referenced parent comment
// does not exist among the post's comments. A parent id belonging to a
// different post is indistinguishable from an absent one.
var ErrParentCommentNotFound = errors.New("Parent comment not found")

// ValidationError represents an entity invariant violation.
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
