package identity

import (
	"context"

	"github.com/dmitrymomot/userkit/pkg/attribute"
)

// Provider is the identity provider capability set used by the account
// handlers and the auth middleware.
type Provider interface {
	SignUp(ctx context.Context, email, password string, attrs attribute.Set) (*SignUpResult, error)
	// IsAutoVerified reports whether the pool verifies attr (e.g. "email")
	// itself by sending a confirmation code.
	IsAutoVerified(ctx context.Context, attr string) (bool, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	// ConfirmSignUpAdmin marks the email verified and confirms the
	// registration without a code.
	ConfirmSignUpAdmin(ctx context.Context, email string) error

	SignIn(ctx context.Context, email, password string) (*Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*Tokens, error)
	SignOut(ctx context.Context, accessToken string) error

	ForgotPassword(ctx context.Context, email string) error
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error
	// SetPassword sets a permanent password on behalf of the user.
	SetPassword(ctx context.Context, email, password string) error

	GetUser(ctx context.Context, accessToken string) (*User, error)
	UpdateAttributes(ctx context.Context, accessToken string, attrs attribute.Set) error
	DeleteUser(ctx context.Context, accessToken string) error
}

// User is a resolved identity: the provider username plus its attributes
// flattened to name -> value.
type User struct {
	Username   string            `json:"username"`
	Attributes map[string]string `json:"attributes"`
}

// Attribute returns a single attribute value, empty when absent.
func (u *User) Attribute(name string) string {
	if u == nil || u.Attributes == nil {
		return ""
	}
	return u.Attributes[name]
}

// Sub returns the immutable user identifier.
func (u *User) Sub() string {
	return u.Attribute("sub")
}

// Tokens is the authentication result. Field names on the wire follow the
// provider's own result shape.
type Tokens struct {
	AccessToken  string `json:"AccessToken"`
	IDToken      string `json:"IdToken"`
	RefreshToken string `json:"RefreshToken,omitempty"`
	ExpiresIn    int32  `json:"ExpiresIn"`
	TokenType    string `json:"TokenType"`
}

type SignUpResult struct {
	UserSub   string
	Confirmed bool
}
