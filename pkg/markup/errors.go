package markup

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every *InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError is returned by ParseValue when the message is not a string.
type InvalidInputError struct {
	Value any
}

func (e *InvalidInputError) Error() string {
	if e.Value == nil {
		return "invalid input: message must be a string, got null"
	}
	return fmt.Sprintf("invalid input: message must be a string, got %T", e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
