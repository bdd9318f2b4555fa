package services

import (
	"errors"
	"fmt"
)

// Service-layer error taxonomy. Handlers translate these to HTTP statuses:
// ValidationError -> 400, not-found -> 404, ErrUsernameTaken -> 409,
// anything else -> 500.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrGameNotFound  = errors.New("game not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// ValidationError marks malformed, missing, or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
