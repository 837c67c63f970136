// Package apperr defines the error taxonomy shared across the application.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error by its cause.
type Code string

const (
	CodeAuth       Code = "AUTH"
	CodeNetwork    Code = "NETWORK"
	CodeRateLimit  Code = "RATE_LIMITED"
	CodeNotFound   Code = "NOT_FOUND"
	CodeValidation Code = "VALIDATION"
	CodeIO         Code = "IO"
)

// Error is a coded application error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Auth reports an invalid or missing credential.
func Auth(message string, err error) *Error {
	return &Error{Code: CodeAuth, Message: message, Err: err}
}

// Network reports a transport-level failure.
func Network(message string, err error) *Error {
	return &Error{Code: CodeNetwork, Message: message, Err: err}
}

// RateLimited reports an exhausted API quota.
func RateLimited(message string, err error) *Error {
	return &Error{Code: CodeRateLimit, Message: message, Err: err}
}

// NotFound reports an inaccessible resource (private, deleted, or missing).
func NotFound(message string, err error) *Error {
	return &Error{Code: CodeNotFound, Message: message, Err: err}
}

// Validation reports rejected user input.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// IO reports a local read/write failure.
func IO(message string, err error) *Error {
	return &Error{Code: CodeIO, Message: message, Err: err}
}

func is(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuth reports whether err is an authentication error.
func IsAuth(err error) bool { return is(err, CodeAuth) }

// IsRateLimited reports whether err is a rate limit error.
func IsRateLimited(err error) bool { return is(err, CodeRateLimit) }

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool { return is(err, CodeNotFound) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return is(err, CodeValidation) }
