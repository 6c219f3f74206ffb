package handler

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/userkit/pkg/requestid"
)

// Context is the request context handed to every HandlerFunc. It can be
// passed wherever a context.Context is expected; cancellation and values
// come from the underlying request.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	RequestID() string
}

func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{Context: r.Context(), w: w, r: r}
}

type httpContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

// RequestID returns the id assigned by requestid.Middleware, or "".
func (c *httpContext) RequestID() string {
	return requestid.FromContext(c.Context)
}
