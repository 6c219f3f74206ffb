package handler

import "net/http"

// HTTPError is an error with an explicit status code. Message is shown to
// the client as "msg".
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized    = HTTPError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrTooManyRequests = HTTPError{Code: http.StatusTooManyRequests, Message: "Too many requests"}
)

// NewHTTPError creates an HTTP error with the given status code and message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}
