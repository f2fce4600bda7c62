package game

import "errors"

var (
	// ErrValidation marks any rejected payload.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidEnum marks an unknown enumeration value. It also matches ErrValidation.
	ErrInvalidEnum = errors.New("invalid enum value")
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field   string
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return ErrValidation
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid returns a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
