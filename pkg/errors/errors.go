// Package errors provides structured error types for cardpress.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, pipeline, and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The card-domain codes mirror the failure kinds of the layout and print
// pipeline:
//   - CARD_NOT_FOUND: a print request names a card that no catalog entry matches
//   - ART_NOT_FOUND: an art reference is missing or unreadable (soft, placeholder used)
//   - RASTERIZATION_ERROR: the external SVG rasterizer failed or is unavailable
//   - INVALID_THEME: a merged theme is incomplete or outside its valid range
//   - EMPTY_INPUT: nothing was requested
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCardNotFound, "card %q not found", id)
//	if errors.Is(err, errors.ErrCodeCardNotFound) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRasterization, origErr, "rasterize %s", id)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme  Code = "INVALID_THEME"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeEmptyInput    Code = "EMPTY_INPUT"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeCardNotFound Code = "CARD_NOT_FOUND"
	ErrCodeArtNotFound  Code = "ART_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Collaborator errors
	ErrCodeRasterization Code = "RASTERIZATION_ERROR"
	ErrCodeTimeout       Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// The outermost *Error wins, so a RASTERIZATION_ERROR wrapping a TIMEOUT
// reports RASTERIZATION_ERROR.
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RasterError carries the diagnostic output of a failed rasterizer run
// together with the card it was rendering.
type RasterError struct {
	CardID     string // Offending card identifier (may be empty)
	Diagnostic string // Raw stderr of the external tool
	Err        error  // Process or lookup error
}

// Error implements the error interface.
func (e *RasterError) Error() string {
	msg := "rasterization failed"
	if e.CardID != "" {
		msg += " for " + e.CardID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnostic != "" {
		msg += "\n" + e.Diagnostic
	}
	return msg
}

// Unwrap returns the underlying process error.
func (e *RasterError) Unwrap() error { return e.Err }

// Code returns the error code for this error type.
func (e *RasterError) Code() Code {
	return ErrCodeRasterization
}
