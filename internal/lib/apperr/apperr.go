// Package apperr defines the error kinds that cross the service boundary.
//
// Services return *Error values carrying a message that is safe to show to the
// client. Callers test the kind with errors.Is against the exported sentinels.
package apperr

import (
	"errors"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Error is a classified application error.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Message returns the user-facing part of the error.
func (e *Error) Message() string {
	return e.message
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind error, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

// Validation reports missing or malformed input.
func Validation(message string) error {
	return newError(ErrValidation, message, nil)
}

// Conflict reports a uniqueness violation.
func Conflict(message string, cause error) error {
	return newError(ErrConflict, message, cause)
}

// Unauthorized reports bad credentials or a missing session.
func Unauthorized(message string, cause error) error {
	return newError(ErrUnauthorized, message, cause)
}

// Forbidden reports a session token that is present but not acceptable.
func Forbidden(message string, cause error) error {
	return newError(ErrForbidden, message, cause)
}

// NotFound reports an unknown entity.
func NotFound(message string, cause error) error {
	return newError(ErrNotFound, message, cause)
}

// MessageOf extracts the user-facing message from err. Errors that are not
// classified yield fallback, so internal details never reach the client.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.message
	}
	return fallback
}

// IsClassified reports whether err carries one of the known kinds.
func IsClassified(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}
