package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store and load failures.
type ErrorCode string

const (
	// CodeNotFound indicates an unknown record id.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeValidationFailed indicates rejected input, e.g. a personal rating
	// outside [1,10] or a missing required field on create.
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// CodeLoadUnavailable indicates the chunk directory is missing or
	// unreadable. Fatal only for load; a previously published collection
	// stays untouched.
	CodeLoadUnavailable ErrorCode = "LOAD_UNAVAILABLE"
)

// Error is a coded failure returned by the store and the catalog service.
type Error struct {
	Code    ErrorCode
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

// NotFound builds a CodeNotFound error for the given record id.
func NotFound(id int) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("movie %d not found", id)}
}

// Validation builds a CodeValidationFailed error.
func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidationFailed, Message: fmt.Sprintf(format, args...)}
}

// LoadUnavailable wraps a fatal load error.
func LoadUnavailable(err error) *Error {
	return &Error{Code: CodeLoadUnavailable, Message: "dataset unavailable", Err: err}
}

// CodeOf extracts the error code, or "" for untyped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsValidation reports whether err carries CodeValidationFailed.
func IsValidation(err error) bool { return CodeOf(err) == CodeValidationFailed }
