// Package apperr defines the typed error taxonomy shared by the service
// layer. Handlers map each kind to an HTTP status; services stay
// transport-free.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Validation Kind = iota
	Authentication
	Authorization
	NotFound
	Conflict
	InvalidTransition
	Precondition
	Internal
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Authentication:
		return "authentication"
	case Authorization:
		return "authorization"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidTransition:
		return "invalid_transition"
	case Precondition:
		return "precondition"
	default:
		return "internal"
	}
}

// Error carries a kind, a user-safe message, and an optional wrapped cause.
// The cause is for logs only and never crosses the HTTP boundary.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the caller-facing text, without any wrapped cause.
func (e *Error) Message() string { return e.Msg }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newf(Validation, format, args...)
}

func Authenticationf(format string, args ...any) *Error {
	return newf(Authentication, format, args...)
}

func Authorizationf(format string, args ...any) *Error {
	return newf(Authorization, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(NotFound, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return newf(Conflict, format, args...)
}

func InvalidTransitionf(format string, args ...any) *Error {
	return newf(InvalidTransition, format, args...)
}

func Preconditionf(format string, args ...any) *Error {
	return newf(Precondition, format, args...)
}

// Internalf wraps an unexpected failure. The cause is kept for logging;
// callers see only the message.
func Internalf(err error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf classifies any error. Untyped errors count as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
