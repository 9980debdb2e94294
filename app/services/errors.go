package services

import (
	"net/http"
)

// Error is a typed service failure carrying the HTTP status it maps to and
// the literal user-visible message. Ownership denials deliberately reuse
// the NotFound status so a non-owner cannot learn whether the resource
// exists.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{StatusCode: status, Message: message}
}

func ErrConflict(message string) *Error {
	return NewError(http.StatusConflict, message)
}

func ErrNotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

func ErrUnauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func ErrBadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func ErrInternal(message string) *Error {
	return NewError(http.StatusInternalServerError, message)
}

// MessageResult is the common success shape for mutations that return no
// resource body.
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Upload is an already-read multipart file handed down by a controller.
type Upload struct {
	Name string
	Data []byte
}
