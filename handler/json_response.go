package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response body shared by every endpoint: a message plus
// payload keys flattened next to it.
type Envelope map[string]any

const (
	msgKey   = "msg"
	errorKey = "error"
)

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithPayload adds key to the envelope. "msg" cannot be overridden.
func WithPayload(key string, value any) JSONOption {
	return func(r *jsonResponse) {
		if key != msgKey {
			r.body[key] = value
		}
	}
}

// WithErrorDetail sets the "error" diagnostic field.
func WithErrorDetail(detail string) JSONOption {
	return WithPayload(errorKey, detail)
}

// JSON creates a 200 envelope response carrying msg.
func JSON(msg string, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   Envelope{msgKey: msg},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// failResponse hands err to the ErrorHandler through Render.
type failResponse struct {
	err error
}

func (f failResponse) Render(http.ResponseWriter, *http.Request) error {
	return f.err
}

// Fail returns a Response that reports err through the configured
// ErrorHandler, which logs it and renders the error envelope.
func Fail(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return failResponse{err: err}
}
