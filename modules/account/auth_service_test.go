package account_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/userkit/pkg/attribute"
	"github.com/dmitrymomot/userkit/pkg/identity"
)

func TestSignUp_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"name":"","email":"a@b.com","password":"Abc12345!"}`,
		`{"name":"Ann","password":"Abc12345!"}`,
		`{"name":"Ann","email":"a@b.com"}`,
		`{}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			rec, env := f.do(t, http.MethodPost, "/auth/sign-up", body, "")

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "Name, email, and password are required", env["msg"])
			f.idp.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		autoVerified bool
		msg          string
	}{
		{"pool verifies email", true, "Account created. Please check your email for the verification code and confirm your account."},
		{"manual confirmation", false, "Account created. Please confirm your account using the confirmAccountManually API."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.idp.On("SignUp", mock.Anything, "ann@example.com", "Abc12345!", mock.MatchedBy(func(s attribute.Set) bool {
				v, _ := s.Get("updated_at")
				return assert.ObjectsAreEqual([]string{"name", "email", "gender", "updated_at"}, s.Names()) &&
					v == "1792152000000"
			})).Return(&identity.SignUpResult{UserSub: "sub-1"}, nil).Once()
			f.idp.On("IsAutoVerified", mock.Anything, "email").Return(tt.autoVerified, nil).Once()

			rec, env := f.do(t, http.MethodPost, "/auth/sign-up",
				`{"name":"Ann","email":"ann@example.com","password":"Abc12345!","gender":"f"}`, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, map[string]any{"msg": tt.msg}, env)
			f.idp.AssertExpectations(t)
		})
	}
}

func TestSignUp_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{
			"invalid phone",
			`{"name":"Ann","email":"ann@example.com","password":"Abc12345!","phoneNumber":"12345"}`,
			"Invalid phone number. Must be in E.164 format (e.g., +1234567890)",
		},
		{
			"weak password",
			`{"name":"Ann","email":"ann@example.com","password":"Abc1234"}`,
			"Password must be at least 8 characters long",
		},
		{
			"invalid name",
			`{"name":"Ann3","email":"ann@example.com","password":"Abc12345!"}`,
			"Name must contain only letters, spaces, hyphens, and apostrophes",
		},
		{
			"too young",
			`{"name":"Ann","email":"ann@example.com","password":"Abc12345!","birthdate":"2016-10-16"}`,
			"Invalid birthdate. User must be at least 13 years old.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			rec, env := f.do(t, http.MethodPost, "/auth/sign-up", tt.body, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.msg, env["msg"])
			assert.Equal(t, "validation failed", env["error"])
			f.idp.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSignUp_ProviderErrorIsPassedThrough(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.idp.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, &identity.Error{
		Op:      "sign up",
		Code:    "UsernameExistsException",
		Message: "An account with the given email already exists.",
		Err:     identity.ErrUserExists,
	})

	rec, env := f.do(t, http.MethodPost, "/auth/sign-up",
		`{"name":"Ann","email":"ann@example.com","password":"Abc12345!"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{
		"msg":   "An account with the given email already exists.",
		"error": "UsernameExistsException",
	}, env)
	f.idp.AssertNotCalled(t, "IsAutoVerified", mock.Anything, mock.Anything)
}

func TestSignUp_MalformedBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"name":`, `{"name":"Ann","nickname":"x"}`, `[]`} {
		t.Run(body, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			rec, env := f.do(t, http.MethodPost, "/auth/sign-up", body, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid request body", env["msg"])
		})
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	t.Run("valid code", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.idp.On("ConfirmSignUp", mock.Anything, "ann@example.com", "123456").Return(nil).Once()

		rec, env := f.do(t, http.MethodPost, "/auth/confirm", `{"email":"ann@example.com","code":"123456"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Account successfully confirmed!", env["msg"])
		f.idp.AssertExpectations(t)
	})

	t.Run("short code", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/auth/confirm", `{"email":"ann@example.com","code":"12"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid code", env["msg"])
		f.idp.AssertNotCalled(t, "ConfirmSignUp", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired code", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.idp.On("ConfirmSignUp", mock.Anything, mock.Anything, mock.Anything).Return(&identity.Error{
			Code:    "ExpiredCodeException",
			Message: "Invalid code provided, please request a code again.",
		})

		rec, env := f.do(t, http.MethodPost, "/auth/confirm", `{"email":"ann@example.com","code":"123456"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid code provided, please request a code again.", env["msg"])
		assert.Equal(t, "ExpiredCodeException", env["error"])
	})
}

func TestConfirmManually(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.idp.On("ConfirmSignUpAdmin", mock.Anything, "ann@example.com").Return(nil).Once()

	rec, env := f.do(t, http.MethodPost, "/auth/confirm-manually", `{"email":"ann@example.com"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Account successfully confirmed!", env["msg"])
	f.idp.AssertExpectations(t)

	rec, env = f.do(t, http.MethodPost, "/auth/confirm-manually", `{"email":"not-an-email"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email", env["msg"])
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("returns tokens", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.idp.On("SignIn", mock.Anything, "ann@example.com", "Abc12345!").Return(&identity.Tokens{
			AccessToken:  "access",
			IDToken:      "id",
			RefreshToken: "refresh",
			ExpiresIn:    3600,
			TokenType:    "Bearer",
		}, nil).Once()

		rec, env := f.do(t, http.MethodPost, "/auth/sign-in", `{"email":"ann@example.com","password":"Abc12345!"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "User successfully signed in!", env["msg"])
		assert.Equal(t, map[string]any{
			"AccessToken":  "access",
			"IdToken":      "id",
			"RefreshToken": "refresh",
			"ExpiresIn":    float64(3600),
			"TokenType":    "Bearer",
		}, env["tokens"])
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.idp.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, &identity.Error{
			Code:    "NotAuthorizedException",
			Message: "Incorrect username or password.",
			Err:     identity.ErrNotAuthorized,
		})

		rec, env := f.do(t, http.MethodPost, "/auth/sign-in", `{"email":"ann@example.com","password":"Abc12345!"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Incorrect username or password.", env["msg"])
	})

	t.Run("missing password", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/auth/sign-in", `{"email":"ann@example.com"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Field password is required", env["msg"])
		f.idp.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/auth/refresh", `{}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Refresh token is required", env["msg"])
	})

	t.Run("refreshed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.idp.On("RefreshTokens", mock.Anything, "refresh").Return(&identity.Tokens{AccessToken: "new"}, nil).Once()

		rec, env := f.do(t, http.MethodPost, "/auth/refresh", `{"refreshToken":"refresh"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Token refreshed successfully", env["msg"])
		tokens := env["tokens"].(map[string]any)
		assert.Equal(t, "new", tokens["AccessToken"])
		assert.NotContains(t, tokens, "RefreshToken")
	})
}

func TestSignOut(t *testing.T) {
	t.Parallel()

	t.Run("requires token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/auth/sign-out", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized - Missing or invalid authorization header", env["msg"])
		f.idp.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
	})

	t.Run("signs out the token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.authorize(testUser())
		f.idp.On("SignOut", mock.Anything, validToken).Return(nil).Once()

		rec, env := f.do(t, http.MethodPost, "/auth/sign-out", "", validToken)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "User successfully signed out!", env["msg"])
		f.idp.AssertExpectations(t)
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.authorize(testUser())
		f.idp.On("SignOut", mock.Anything, validToken).Return(errors.New("throttled"))

		rec, env := f.do(t, http.MethodPost, "/auth/sign-out", "", validToken)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "throttled", env["msg"])
	})
}
