package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/userkit/modules/account"
	"github.com/dmitrymomot/userkit/pkg/identity"
)

const validToken = "valid-token"

var refNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func testUser() *identity.User {
	return &identity.User{
		Username: "ann",
		Attributes: map[string]string{
			"sub":   "sub-1",
			"email": "ann@example.com",
			"name":  "Ann",
		},
	}
}

type fixture struct {
	idp    *MockProvider
	store  *MockStorage
	codes  *MockCodeIssuer
	mailer *MockMailer
	router http.Handler
}

func newFixture(t *testing.T, opts ...account.Option) *fixture {
	t.Helper()

	f := &fixture{
		idp:    &MockProvider{},
		store:  &MockStorage{},
		codes:  &MockCodeIssuer{},
		mailer: &MockMailer{},
	}

	opts = append([]account.Option{account.WithClock(func() time.Time { return refNow })}, opts...)
	f.router = account.Router(account.RouterOptions{
		Auth:     account.NewAuthService(f.idp, opts...),
		Password: account.NewPasswordService(f.idp, f.codes, f.mailer, opts...),
		Profile:  account.NewProfileService(f.idp, f.store, opts...),
	})
	return f
}

// authorize makes validToken resolve to user.
func (f *fixture) authorize(user *identity.User) {
	f.idp.On("GetUser", mock.Anything, validToken).Return(user, nil)
}

func (f *fixture) do(t *testing.T, method, path, body string, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}
