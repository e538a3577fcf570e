package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Details is optional diagnostic text shown to clients next to the message.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	cause   error
}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Internal returns a storage-level failure with a generic client message.
// The cause is kept for logging and errors.Is checks but never rendered.
func Internal(msg string, cause error) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: msg,
		cause:   cause,
	}
}

// InternalWithDetails is like Internal but exposes the cause text as Details.
func InternalWithDetails(msg string, cause error) error {
	details := "Unknown error"
	if cause != nil {
		details = cause.Error()
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: msg,
		Details: details,
		cause:   cause,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetDetails returns the details of a Failure, or an empty string.
func GetDetails(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Details
	}

	return ""
}
