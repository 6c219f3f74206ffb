package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/binder"
	"github.com/dmitrymomot/userkit/pkg/requestid"
)

type emailRequest struct {
	Email string `json:"email"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders envelope", func(t *testing.T) {
		t.Parallel()

		h := handler.HandlerFunc[emailRequest](func(ctx handler.Context, req emailRequest) handler.Response {
			return handler.JSON("ok", handler.WithPayload("email", req.Email))
		})

		wrapped := handler.Wrap(h, handler.Route{Binders: []handler.Bind{binder.JSON()}})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"email":"ann@example.com"}`))
		rec := httptest.NewRecorder()
		wrapped(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, map[string]any{"msg": "ok", "email": "ann@example.com"}, decode(t, rec))
	})

	t.Run("bind failure skips handler", func(t *testing.T) {
		t.Parallel()

		called := false
		h := handler.HandlerFunc[emailRequest](func(ctx handler.Context, req emailRequest) handler.Response {
			called = true
			return handler.JSON("ok")
		})

		wrapped := handler.Wrap(h, handler.Route{Binders: []handler.Bind{binder.JSON()}})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"email":`))
		rec := httptest.NewRecorder()
		wrapped(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decode(t, rec)["msg"])
	})

	t.Run("fail goes through error handler", func(t *testing.T) {
		t.Parallel()

		var handled error
		h := handler.HandlerFunc[emailRequest](func(ctx handler.Context, req emailRequest) handler.Response {
			return handler.Fail(errors.New("User does not exist."))
		})

		wrapped := handler.Wrap(h, handler.Route{ErrorHandler: func(ctx handler.Context, err error) {
			handled = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}})

		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.EqualError(t, handled, "User does not exist.")
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()

		h := handler.HandlerFunc[emailRequest](func(ctx handler.Context, req emailRequest) handler.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		handler.Wrap(h, handler.Route{})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, handler.ErrNilResponse.Error(), decode(t, rec)["msg"])
	})

	t.Run("skips binders that do not apply", func(t *testing.T) {
		t.Parallel()

		skip := func(*http.Request, any) error { return binder.ErrBinderNotApplicable }
		h := handler.HandlerFunc[emailRequest](func(ctx handler.Context, req emailRequest) handler.Response {
			return handler.JSON("ok", handler.WithPayload("email", req.Email))
		})

		wrapped := handler.Wrap(h, handler.Route{Binders: []handler.Bind{skip, binder.JSON()}})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"email":"ann@example.com"}`))
		rec := httptest.NewRecorder()
		wrapped(rec, req)

		assert.Equal(t, "ann@example.com", decode(t, rec)["email"])
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("msg cannot be overridden by payload", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.JSON("done", handler.WithPayload("msg", "other"), handler.WithPayload("expiresIn", 3600))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, map[string]any{"msg": "done", "expiresIn": float64(3600)}, decode(t, rec))
	})

	t.Run("custom status and error detail", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		resp := handler.JSON("Name, email, and password are required",
			handler.WithJSONStatus(http.StatusUnprocessableEntity))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, map[string]any{"msg": "Name, email, and password are required"}, decode(t, rec))
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)

	assert.Equal(t, "req-1", ctx.RequestID())
	assert.Equal(t, "req-1", requestid.FromContext(ctx))
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, http.ResponseWriter(rec), ctx.ResponseWriter())
	assert.NoError(t, ctx.Err())
}
