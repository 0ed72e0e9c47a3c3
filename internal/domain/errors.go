package domain

// ErrValidation is returned when an entity fails validation
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) error {
	return &ErrValidation{Message: message}
}
