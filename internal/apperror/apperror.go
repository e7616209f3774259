package apperror

import (
	"errors"
	"net/http"
)

// Error is a domain error carrying the HTTP status it should surface as.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest reports invalid or missing input.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFound reports an absent or ineligible resource.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports an invariant violation (truck in use, driver already on a
// trip, sub-trip already exists). Surfaced as 400 to match the API contract.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized reports a failed authentication check.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Upstream reports a gateway (storage, OTP provider) failure.
func Upstream(message string, err error) *Error {
	return &Error{Status: http.StatusBadGateway, Message: message, Err: err}
}

// Internal reports an unexpected persistence or infrastructure failure.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for errors
// that carry no status of their own.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-safe message for err. Unexpected errors are
// masked so internal details never reach the response body.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal Server Error"
}
