package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps any failure of the underlying store. The wrapped
	// cause is for operators only.
	ErrStorage = errors.New("storage failure")
)

// ValidationError is a client input problem; Message is safe to return.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
