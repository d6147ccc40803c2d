// Package apperr defines the typed errors domain operations raise and the
// boundary layer translates into the {message, status, data} envelope.
package apperr

import (
	"errors"
	"net/http"
)

// FieldError carries one input-violation message.
type FieldError struct {
	Message string `json:"message"`
}

// Error is a domain failure with an HTTP-style status and optional
// structured data (the list of field violations for validation failures).
type Error struct {
	Message string
	Status  int
	Data    []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// Validation builds a 422 error from an ordered list of violation messages.
func Validation(message string, violations []string) *Error {
	data := make([]FieldError, len(violations))
	for i, v := range violations {
		data[i] = FieldError{Message: v}
	}
	return &Error{Message: message, Status: http.StatusUnprocessableEntity, Data: data}
}

// Authentication indicates missing or bad credentials.
func Authentication(message string) *Error {
	return &Error{Message: message, Status: http.StatusUnauthorized}
}

// Authorization indicates an ownership violation.
func Authorization(message string) *Error {
	return &Error{Message: message, Status: http.StatusForbidden}
}

// NotFound indicates a missing entity.
func NotFound(message string) *Error {
	return &Error{Message: message, Status: http.StatusNotFound}
}

// Conflict indicates a uniqueness violation, e.g. a duplicate email.
func Conflict(message string) *Error {
	return &Error{Message: message, Status: http.StatusConflict}
}

// From extracts the typed error from err, or wraps it as an unexpected
// 500-class failure so the boundary always has a status to report.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Message: err.Error(), Status: http.StatusInternalServerError}
}
