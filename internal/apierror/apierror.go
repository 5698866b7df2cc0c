// Package apierror defines the single error kind services return to the HTTP layer.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and the message rendered in the error envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// New creates an Error with an explicit status.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest is returned for schema validation failures.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized is returned for credential and session failures.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound is returned when a referenced entity does not exist or is not owned by the caller.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict is returned for duplicate keys. Clients of the original API expect 400 here.
func Conflict(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// TooManyRequests is returned by the login rate limiter.
func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the status carried by err, or 500 when err is not an *Error.
func StatusOf(err error) int {
	if apiErr, ok := As(err); ok {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
