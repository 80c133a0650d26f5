// Package errors provides structured error types for graphlayers.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Exit status and HTTP status mapping from a single taxonomy
//
// # Error Codes
//
// Each code names one member of the failure taxonomy of a layering run:
//   - INPUT_ACCESS: the graph source cannot be opened or read
//   - INVALID_FORMAT: a graph line has no parseable leading vertex id
//   - UNKNOWN_START_VERTEX: the start vertex is absent from the graph
//   - OUTPUT_ACCESS: the report destination cannot be written
//   - INVALID_ARGUMENT: malformed command arguments or request parameters
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "start vertex %q is not an integer", tok)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInputAccess, origErr, "open %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the layering pipeline.
const (
	ErrCodeInputAccess        Code = "INPUT_ACCESS"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeUnknownStartVertex Code = "UNKNOWN_START_VERTEX"
	ErrCodeOutputAccess       Code = "OUTPUT_ACCESS"
	ErrCodeInvalidArgument    Code = "INVALID_ARGUMENT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130 // Standard shell convention for SIGINT
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

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case Is(err, ErrCodeInvalidArgument):
		return ExitUsage
	default:
		return ExitFailure
	}
}
