package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the request boundary. Handlers map kinds to
// HTTP status codes and render {"error": <kind>, "message": <text>}.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindConflict         Kind = "conflict"
	KindValidation       Kind = "validation_error"
	KindUnauthorized     Kind = "unauthorized"
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// New creates a classified error with a human-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

func NotFound(message string) *Error         { return New(KindNotFound, message) }
func PermissionDenied(message string) *Error { return New(KindPermissionDenied, message) }
func Conflict(message string) *Error         { return New(KindConflict, message) }
func Validation(message string) *Error       { return New(KindValidation, message) }
func Unauthorized(message string) *Error     { return New(KindUnauthorized, message) }

// KindOf returns the kind of err, or an empty kind when err is not classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
