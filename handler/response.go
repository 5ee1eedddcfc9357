package handler

import (
	"encoding/json"
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Failure is the body of every unsuccessful response.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	// Encode before writing headers so an encoding failure can still be
	// reported with a proper status by the error handler.
	b, err := json.Marshal(j.body)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(b, '\n'))
	return err
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithStatus sets the HTTP status code.
func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON renders v with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fail renders a Failure body with the given status.
func Fail(status int, message string, opts ...JSONOption) Response {
	return JSON(Failure{Error: message}, append([]JSONOption{WithStatus(status)}, opts...)...)
}

// FailWithHint renders a Failure body carrying an extra hint message.
func FailWithHint(status int, message, hint string) Response {
	return JSON(Failure{Error: message, Message: hint}, WithStatus(status))
}
