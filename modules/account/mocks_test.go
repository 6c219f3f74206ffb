package account_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/userkit/pkg/attribute"
	"github.com/dmitrymomot/userkit/pkg/email"
	"github.com/dmitrymomot/userkit/pkg/identity"
	"github.com/dmitrymomot/userkit/pkg/storage"
)

// MockProvider is a mock implementation of identity.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SignUp(ctx context.Context, email, password string, attrs attribute.Set) (*identity.SignUpResult, error) {
	args := m.Called(ctx, email, password, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.SignUpResult), args.Error(1)
}

func (m *MockProvider) IsAutoVerified(ctx context.Context, attr string) (bool, error) {
	args := m.Called(ctx, attr)
	return args.Bool(0), args.Error(1)
}

func (m *MockProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *MockProvider) ConfirmSignUpAdmin(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (*identity.Tokens, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tokens), args.Error(1)
}

func (m *MockProvider) RefreshTokens(ctx context.Context, refreshToken string) (*identity.Tokens, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tokens), args.Error(1)
}

func (m *MockProvider) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockProvider) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockProvider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

func (m *MockProvider) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	return m.Called(ctx, accessToken, currentPassword, newPassword).Error(0)
}

func (m *MockProvider) SetPassword(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func (m *MockProvider) GetUser(ctx context.Context, accessToken string) (*identity.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockProvider) UpdateAttributes(ctx context.Context, accessToken string, attrs attribute.Set) error {
	return m.Called(ctx, accessToken, attrs).Error(0)
}

func (m *MockProvider) DeleteUser(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

// MockStorage is a mock implementation of storage.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadURL(ctx context.Context, key, contentType string) (*storage.PresignedURL, error) {
	args := m.Called(ctx, key, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

func (m *MockStorage) DownloadURL(ctx context.Context, key string) (*storage.PresignedURL, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.PresignedURL), args.Error(1)
}

func (m *MockStorage) ObjectURL(key string) string {
	return m.Called(key).String(0)
}

func (m *MockStorage) KeyFromURL(objectURL string) (string, error) {
	args := m.Called(objectURL)
	return args.String(0), args.Error(1)
}

// MockCodeIssuer is a mock implementation of account.CodeIssuer
type MockCodeIssuer struct {
	mock.Mock
}

func (m *MockCodeIssuer) Issue(ctx context.Context, subject string) (string, error) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Error(1)
}

func (m *MockCodeIssuer) Verify(ctx context.Context, subject, code string) error {
	return m.Called(ctx, subject, code).Error(0)
}

func (m *MockCodeIssuer) TTL() time.Duration {
	return 15 * time.Minute
}

// MockMailer is a mock implementation of email.EmailSender
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}
