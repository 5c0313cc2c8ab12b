package htmlmeta

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	// EINVALID is returned for URLs that cannot be fetched because they are
	// malformed or use a scheme other than http or https.
	EINVALID = "invalid"

	// EUNREACHABLE is returned for any failure while fetching a valid URL:
	// DNS, TLS, timeouts, body read errors and non-2xx statuses alike.
	EUNREACHABLE = "unreachable"

	// EINTERNAL is returned for unexpected failures.
	EINTERNAL = "internal"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with a given code and message that keeps err
// as its cause.
func WrapError(err error, code string, format string, args ...any) *Error {
	e := Errorf(code, format, args...)
	e.Err = err
	return e
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
