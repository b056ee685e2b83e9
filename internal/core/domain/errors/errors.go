package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState = errors.New("invalid state")
	ErrNilArgument  = errors.New("nil argument")
)

// InvalidStateError is returned when a loaded account, token or blog breaks its own invariants.
type InvalidStateError struct {
	msg string
}

func NewInvalidStateError(msg string) *InvalidStateError {
	return &InvalidStateError{msg: msg}
}

func (e *InvalidStateError) Error() string {
	return e.msg
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NilArgumentError is what constructors panic with when a dependency is missing.
type NilArgumentError struct {
	Argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{Argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("%s must not be nil", e.Argument)
}

func (e *NilArgumentError) Unwrap() error {
	return ErrNilArgument
}
