package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindConflict        ErrorKind = "CONFLICT"
)

// Error is the error type surfaced to API callers. Kind is machine readable,
// Message is shown to the user as is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrConflict)
// holds for every conflict regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "Not authorized"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "Resource not found"}
	ErrValidation      = &Error{Kind: KindValidation, Message: "Validation failed"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "Resource already exists"}
)

func NewUnauthenticatedError(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
