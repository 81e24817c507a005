// Package apperr defines the error kinds surfaced by the callable backend
// and understood by its clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindInvalidArgument Kind = "invalid-argument"
	KindNotFound        Kind = "not-found"
	KindInternal        Kind = "internal"
	KindUnavailable     Kind = "unavailable"
)

// Status returns the wire status string used in callable error bodies.
func (k Kind) Status() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}

// HTTPStatus maps the kind to an HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// KindFromStatus is the inverse of Kind.Status. Unknown statuses map to
// KindInternal.
func KindFromStatus(status string) Kind {
	switch status {
	case "INVALID_ARGUMENT":
		return KindInvalidArgument
	case "NOT_FOUND":
		return KindNotFound
	case "UNAVAILABLE":
		return KindUnavailable
	default:
		return KindInternal
	}
}

// Error carries a Kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InvalidArgument reports missing or malformed request fields.
func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message, nil)
}

// NotFound reports a missing record.
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Internal wraps an unexpected backend failure.
func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// Unavailable wraps a transport failure.
func Unavailable(message string, err error) *Error {
	return New(KindUnavailable, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the message of the first *Error in err's chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// IsInvalidArgument reports whether err is a validation error.
func IsInvalidArgument(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInvalidArgument
}

// IsUnavailable reports whether err came from a failed transport.
func IsUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnavailable
}
