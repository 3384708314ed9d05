package apperr

import (
	"errors"
	"net/http"
)

// Kinds. Every domain error wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrTransient    = errors.New("temporary failure")
)

// Error is a user-facing message tagged with a kind.
type Error struct {
	kind error
	msg  string
}

// New returns an error whose message is shown to callers as-is and which
// matches kind under errors.Is.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the kind sentinel err belongs to, or nil for untagged errors.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrUnauthorized, ErrInvalidState, ErrConflict, ErrInvalidInput, ErrTransient} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// HTTPStatus maps err to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnauthorized:
		return http.StatusForbidden
	case ErrInvalidState, ErrConflict:
		return http.StatusConflict
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show to callers. Untagged errors are
// internal and get a generic message.
func Message(err error) string {
	if Kind(err) == nil {
		return "internal server error"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return err.Error()
}
