package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// ValidationError reports bad caller input. It renders as 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// HTTPError is an error carrying the status code it should be rendered with.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Code)
	}
	return e.Message
}

var (
	ErrNotFound         = HTTPError{Code: http.StatusNotFound, Message: "Endpoint not found"}
	ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Message: "Method not allowed"}
	ErrInternal         = HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error"}
)
