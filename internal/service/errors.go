package service

import (
	"fmt"
	"net/http"
)

// Error is a domain error carrying the HTTP status it maps to.
// The API boundary translates these into the uniform error envelope;
// anything else becomes a 500 with a generic message.
type Error struct {
	Code    int
	Message string
}

// NewError creates a new domain error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error %d: %s", e.Code, e.Message)
}

// NewBadRequest creates a 400 error
func NewBadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// NewUnauthorized creates a 401 error
func NewUnauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

// NewForbidden creates a 403 error
func NewForbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// NewNotFound creates a 404 error
func NewNotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// NewConflict creates a 409 error
func NewConflict(message string) *Error {
	return NewError(http.StatusConflict, message)
}
