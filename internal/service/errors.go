package service

import (
	"errors"
	"fmt"
)

// Error kinds shared by every service. Callers match them with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not enough rights")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
