package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "bar specification period must be positive".
	Message string

	// Code (required) is one of the ErrorCode values of this package.
	// E.g. "invalid_bar_specification".
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// Newf creates ErrorDetails for the given code with a formatted message.
func Newf(code ErrorCode, field, format string, args ...any) *ErrorDetails {
	return NewErrorDetails(fmt.Sprintf(format, args...), string(code), field)
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
// Wrapped errors (including ErrorTracer) are unwrapped; a BaseError matches when any of its details does.
func ErrorCodeEquals(err error, code string) bool {
	var baseErr *BaseError
	if stderrors.As(err, &baseErr) {
		return baseErr.IsAnyCodeEqual(code)
	}

	var errDetails *ErrorDetails
	if !stderrors.As(err, &errDetails) {
		return false
	}

	return errDetails.Code == code
}

// HasCode is ErrorCodeEquals for an ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return ErrorCodeEquals(err, string(code))
}
