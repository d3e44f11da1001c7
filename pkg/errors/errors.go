// Package errors defines the structured error types used across the Vigia
// provisioning service. Each store boundary returns a typed *AppError; the HTTP
// layer converts it to a response exactly once.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable error classification.
type Code string

const (
	// CodeValidation marks a missing or malformed request field, rejected
	// before any store access.
	CodeValidation Code = "validation_error"

	// CodeNotFound marks a referenced record that does not exist.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a uniqueness violation on a conditional insert.
	CodeConflict Code = "conflict"

	// CodeAuth marks bad credentials or an invalid, expired, or malformed
	// token. The message is always generic so callers cannot distinguish the
	// reason.
	CodeAuth Code = "auth_error"

	// CodeUpstream marks a failure of the external marketplace resolution
	// service, not the caller's fault.
	CodeUpstream Code = "upstream_error"

	// CodeInternal marks an unexpected server-side failure.
	CodeInternal Code = "internal_error"
)

// AppError is a structured application error carrying an HTTP status mapping
// and an optional wrapped cause.
type AppError struct {
	code    Code
	status  int
	message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error classification.
func (e *AppError) Code() Code { return e.code }

// HTTPStatus returns the HTTP status this error maps to at the API boundary.
func (e *AppError) HTTPStatus() int { return e.status }

// Message returns the client-visible message without the wrapped cause.
func (e *AppError) Message() string { return e.message }

// Unwrap supports errors.Is / errors.As chains.
func (e *AppError) Unwrap() error { return e.cause }

// WithCause attaches an underlying error without changing the client-visible
// classification.
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{code: e.code, status: e.status, message: e.message, cause: cause}
}

// New creates an AppError with an explicit code and status.
func New(code Code, status int, message string) *AppError {
	return &AppError{code: code, status: status, message: message}
}

// ErrValidation creates a validation error for a malformed request.
func ErrValidation(message string) *AppError {
	return New(CodeValidation, http.StatusBadRequest, message)
}

// ErrNotFound creates a not-found error for the named resource.
func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// ErrConflict creates a conflict error for a failed conditional insert.
func ErrConflict(message string) *AppError {
	return New(CodeConflict, http.StatusConflict, message)
}

// ErrAuth creates the generic authentication error. The message is fixed:
// credential failures and token failures are indistinguishable to the caller.
func ErrAuth() *AppError {
	return New(CodeAuth, http.StatusUnauthorized, "invalid credentials or token")
}

// ErrUpstream creates an error for a failed external collaborator call.
func ErrUpstream(message string) *AppError {
	return New(CodeUpstream, http.StatusBadGateway, message)
}

// ErrInternal creates a generic server error.
func ErrInternal(message string) *AppError {
	return New(CodeInternal, http.StatusInternalServerError, message)
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func hasCode(err error, code Code) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.code == code
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool { return hasCode(err, CodeConflict) }

// IsAuth reports whether err is an authentication error.
func IsAuth(err error) bool { return hasCode(err, CodeAuth) }

// IsUpstream reports whether err is an upstream collaborator failure.
func IsUpstream(err error) bool { return hasCode(err, CodeUpstream) }
