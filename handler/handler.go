package handler

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/userkit/pkg/binder"
)

// HandlerFunc handles a request whose body has already been bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
// An error returned from Render is passed to the ErrorHandler; nothing may
// have been written in that case.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses the request into v. Binders that do not apply to a request
// return binder.ErrBinderNotApplicable and are skipped.
type Bind func(r *http.Request, v any) error

// ErrorHandler renders bind, handler and render failures.
type ErrorHandler func(ctx Context, err error)

// Route is the set of options shared by the handlers of one service.
type Route struct {
	Binders      []Bind
	ErrorHandler ErrorHandler
}

// Wrap converts a HandlerFunc to an http.HandlerFunc. Without an
// ErrorHandler, errors are rendered as envelopes and not logged.
func Wrap[R any](h HandlerFunc[R], route Route) http.HandlerFunc {
	onError := route.ErrorHandler
	if onError == nil {
		onError = renderError
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range route.Binders {
			err := bind(r, &req)
			if errors.Is(err, binder.ErrBinderNotApplicable) {
				continue
			}
			if err != nil {
				onError(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			onError(ctx, err)
		}
	}
}

func renderError(ctx Context, err error) {
	_ = errorEnvelope(classifyError(err)).Render(ctx.ResponseWriter(), ctx.Request())
}
