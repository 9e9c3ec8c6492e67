// Package errors provides structured error types for the turkshead CLI and
// HTTP API.
//
// The knot packages report failures with sentinel errors wrapped by
// fmt.Errorf. This package turns those into coded errors that the outer
// surfaces can report consistently:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//   - An HTTP status per code
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*, MALFORMED_*: input validation failures
//   - knot-specific codes (NOT_TYABLE, AMBIGUOUS_LINE, ...): the input is
//     well-formed but does not describe a tyable knot
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid layer list: %s", s)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Attach a code to a knot error
//	err := errors.FromKnot(knotErr, "tracing %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidLayer      Code = "INVALID_LAYER"
	ErrCodeMalformedPoint    Code = "MALFORMED_POINT"
	ErrCodeNoLowerLeftCorner Code = "NO_LOWER_LEFT_CORNER"
	ErrCodeTooLarge          Code = "TOO_LARGE"

	// Topology errors
	ErrCodeAmbiguousLine      Code = "AMBIGUOUS_LINE"
	ErrCodeNotTyable          Code = "NOT_TYABLE"
	ErrCodeUnreachablePath    Code = "UNREACHABLE_PATH"
	ErrCodeNonterminatingPath Code = "NONTERMINATING_PATH"

	// Synthesis errors
	ErrCodeNonDivisibleLayer Code = "NON_DIVISIBLE_LAYER"
	ErrCodeSearchExhausted   Code = "SEARCH_EXHAUSTED"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
