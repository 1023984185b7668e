// Package apperr is the error taxonomy shared by the service and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Type string

const (
	TypeNotFound     Type = "NOT_FOUND"
	TypeInvalidInput Type = "INVALID_INPUT"
	TypeUnavailable  Type = "UNAVAILABLE"
	TypeInternal     Type = "INTERNAL"
)

type Error struct {
	Type    Type
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) StackTrace() []byte { return e.Stack }

func New(t Type, message string, err error) *Error {
	var stack []byte
	if err != nil {
		if se, ok := err.(*goerrors.Error); ok {
			stack = se.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}
	return &Error{Type: t, Message: message, Err: err, Stack: stack}
}

func NotFound(message string, err error) *Error     { return New(TypeNotFound, message, err) }
func InvalidInput(message string, err error) *Error { return New(TypeInvalidInput, message, err) }
func Unavailable(message string, err error) *Error  { return New(TypeUnavailable, message, err) }
func Internal(message string, err error) *Error     { return New(TypeInternal, message, err) }

// TypeOf returns the taxonomy type of err, TypeInternal for foreign errors.
func TypeOf(err error) Type {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
