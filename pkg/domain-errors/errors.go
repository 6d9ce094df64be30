// Package domainerrors provides coded errors that services raise and the
// transport layer translates into HTTP status codes exactly once, at the
// response boundary. Stores and clients return sentinel or transport errors;
// services wrap them with a code here so callers never see raw infrastructure
// failures.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for boundary translation.
type Code string

const (
	// CodeInvalidInput marks a malformed identifier or argument. Raised
	// before any I/O happens.
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks caller-supplied data failing validation.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks an entity missing upstream or locally.
	CodeNotFound Code = "not_found"
	// CodeForbidden marks a caller whose active role does not permit the
	// operation.
	CodeForbidden Code = "forbidden"
	// CodeConflict marks a state conflict (duplicate registration).
	CodeConflict Code = "conflict"
	// CodeInternal marks upstream communication or signing failures.
	CodeInternal Code = "internal"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors so unknown failures never leak as client faults.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the user-facing message from err. Uncoded errors get a
// generic message; their detail belongs in logs, not responses.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
