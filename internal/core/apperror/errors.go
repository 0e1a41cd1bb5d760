package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates missing or malformed input
	ErrValidation = errors.New("validation failed")

	// ErrMalformedID indicates an identifier that is not a UUID
	ErrMalformedID = errors.New("malformed identifier")

	// ErrNotFound indicates the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller is authenticated but not allowed to act
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated indicates missing or invalid credentials
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConflict indicates a uniqueness violation
	ErrConflict = errors.New("conflict")
)

// Error carries a caller-facing message on top of one of the sentinels above.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// Message returns the text that is safe to show to API clients.
func (e *Error) Message() string { return e.message }

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return newError(ErrValidation, format, args...) }

func MalformedID(format string, args ...any) error { return newError(ErrMalformedID, format, args...) }

func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

func Forbidden(format string, args ...any) error { return newError(ErrForbidden, format, args...) }

func Unauthenticated(format string, args ...any) error {
	return newError(ErrUnauthenticated, format, args...)
}

func Conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsMalformedID(err error) bool { return errors.Is(err, ErrMalformedID) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// PublicMessage returns the client-facing message of err, or fallback when err
// does not carry one.
func PublicMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return fallback
}
