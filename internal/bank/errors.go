package bank

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateDay       = errors.New("question bank repeats a day number")
	ErrEmptyBank          = errors.New("question bank has no steps")
	ErrMixedShape         = errors.New("question bank mixes \"steps\" and \"dayN\" keys")
	ErrUnknownShape       = errors.New("question bank has neither \"steps\" nor \"dayN\" keys")
	ErrUnsupportedVersion = errors.New("unsupported question bank version")
)

// ValidationError is returned when a bank document fails schema or
// semantic validation.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question bank %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
