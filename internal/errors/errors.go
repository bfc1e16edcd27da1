// Package errors defines the application error type shared by the data, service and HTTP layers.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode groups errors by how callers should react to them.
type ErrorCode string

const (
	// ErrCodeNotFound marks a lookup with no match, such as an unknown tenant name.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation marks a bad request parameter.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnavailable marks an unreachable document store or downstream.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeTimeout marks a store call that hit its deadline.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled marks a store call abandoned by its caller.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError carries a code, a message safe to show clients and an optional cause.
// errors.Is and errors.As see through it to the cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field names the query parameter a validation error is about.
	Field string
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Validationf builds a validation error.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Unavailable builds an error for a dependency that could not be reached.
func Unavailable(message string) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: message}
}

// Wrap attaches a code and message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithField returns a copy tagged with the offending parameter.
func (e *AppError) WithField(field string) *AppError {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Field = field
	return &cp
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasCode(err error, code ErrorCode) bool {
	appErr, ok := asAppError(err)
	return ok && appErr.Code == code
}

// IsNotFound reports whether err carries ErrCodeNotFound.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsValidation reports whether err carries ErrCodeValidation.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsUnavailable reports whether err carries ErrCodeUnavailable.
func IsUnavailable(err error) bool { return hasCode(err, ErrCodeUnavailable) }

// IsTimeout reports whether err carries ErrCodeTimeout.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// GetCode returns the code of the outermost AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// GetField returns the parameter a validation error names, or "".
func GetField(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Field
	}
	return ""
}
