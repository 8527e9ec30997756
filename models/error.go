package models

import (
	"errors"
	"net/http"
)

// APIError is the one error type that crosses the service boundary. Every
// client-correctable failure is mapped to an APIError before it reaches a
// controller; anything else is treated as a server fault and rendered as
// a 500 with a generic message.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func Unauthorized(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

func BadRequest(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not
// an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message for err. Non-APIError faults
// never leak their internals to the client.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Something went wrong, please try again later"
}
