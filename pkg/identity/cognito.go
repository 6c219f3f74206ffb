package identity

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/userkit/pkg/attribute"
)

// CognitoClient defines the Cognito operations used by Cognito.
type CognitoClient interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	DescribeUserPool(ctx context.Context, params *cip.DescribeUserPoolInput, optFns ...func(*cip.Options)) (*cip.DescribeUserPoolOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cip.AdminUpdateUserAttributesInput, optFns ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error)
	AdminConfirmSignUp(ctx context.Context, params *cip.AdminConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.AdminConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, params *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	ForgotPassword(ctx context.Context, params *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cip.ConfirmForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error)
	ChangePassword(ctx context.Context, params *cip.ChangePasswordInput, optFns ...func(*cip.Options)) (*cip.ChangePasswordOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	GetUser(ctx context.Context, params *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
	UpdateUserAttributes(ctx context.Context, params *cip.UpdateUserAttributesInput, optFns ...func(*cip.Options)) (*cip.UpdateUserAttributesOutput, error)
	DeleteUser(ctx context.Context, params *cip.DeleteUserInput, optFns ...func(*cip.Options)) (*cip.DeleteUserOutput, error)
}

// CognitoConfig contains configuration for the Cognito user pool.
type CognitoConfig struct {
	Region     string `env:"REGION,required"`
	UserPoolID string `env:"COGNITO_USER_POOL_ID,required"`
	ClientID   string `env:"COGNITO_CLIENT_ID,required"`
}

// CognitoOption defines a function that configures Cognito.
type CognitoOption func(*cognitoOptions)

type cognitoOptions struct {
	client        CognitoClient
	awsConfig     *aws.Config
	clientOptions []func(*cip.Options)
}

// WithCognitoClient sets a pre-configured client. Useful for testing with mocks.
func WithCognitoClient(client CognitoClient) CognitoOption {
	return func(o *cognitoOptions) {
		o.client = client
	}
}

// WithAWSConfig reuses an already loaded AWS config instead of loading the
// default chain.
func WithAWSConfig(cfg aws.Config) CognitoOption {
	return func(o *cognitoOptions) {
		o.awsConfig = &cfg
	}
}

// WithCognitoClientOption adds a custom client option.
func WithCognitoClientOption(option func(*cip.Options)) CognitoOption {
	return func(o *cognitoOptions) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// Cognito implements Provider for an Amazon Cognito user pool.
// It is safe for concurrent use.
type Cognito struct {
	client     CognitoClient
	userPoolID string
	clientID   string
}

var _ Provider = (*Cognito)(nil)

// NewCognito creates a Cognito provider.
func NewCognito(ctx context.Context, cfg CognitoConfig, opts ...CognitoOption) (*Cognito, error) {
	if cfg.UserPoolID == "" || cfg.ClientID == "" {
		return nil, ErrInvalidConfig
	}

	options := &cognitoOptions{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.client
	if client == nil {
		var awsConfig aws.Config
		if options.awsConfig != nil {
			awsConfig = *options.awsConfig
		} else {
			if cfg.Region == "" {
				return nil, ErrInvalidConfig
			}
			loaded, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
			}
			awsConfig = loaded
		}

		client = cip.NewFromConfig(awsConfig, func(o *cip.Options) {
			if cfg.Region != "" {
				o.Region = cfg.Region
			}
			for _, opt := range options.clientOptions {
				opt(o)
			}
		})
	}

	return &Cognito{
		client:     client,
		userPoolID: cfg.UserPoolID,
		clientID:   cfg.ClientID,
	}, nil
}

// classifyCognitoError converts SDK errors into *Error values.
func classifyCognitoError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Op:      operation,
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
			Err:     err,
		}
	}

	return &Error{Op: operation, Err: err}
}

func toCognitoAttributes(attrs attribute.Set) []types.AttributeType {
	out := make([]types.AttributeType, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, types.AttributeType{
			Name:  aws.String(a.Name),
			Value: aws.String(a.Value),
		})
	}
	return out
}

func toTokens(res *types.AuthenticationResultType) *Tokens {
	return &Tokens{
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		ExpiresIn:    res.ExpiresIn,
		TokenType:    aws.ToString(res.TokenType),
	}
}

func (c *Cognito) SignUp(ctx context.Context, email, password string, attrs attribute.Set) (*SignUpResult, error) {
	out, err := c.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(c.clientID),
		Username:       aws.String(email),
		Password:       aws.String(password),
		UserAttributes: toCognitoAttributes(attrs),
	})
	if err != nil {
		return nil, classifyCognitoError(err, "sign up")
	}

	return &SignUpResult{
		UserSub:   aws.ToString(out.UserSub),
		Confirmed: out.UserConfirmed,
	}, nil
}

func (c *Cognito) IsAutoVerified(ctx context.Context, attr string) (bool, error) {
	out, err := c.client.DescribeUserPool(ctx, &cip.DescribeUserPoolInput{
		UserPoolId: aws.String(c.userPoolID),
	})
	if err != nil {
		return false, classifyCognitoError(err, "describe user pool")
	}
	if out.UserPool == nil {
		return false, nil
	}

	return slices.Contains(out.UserPool.AutoVerifiedAttributes, types.VerifiedAttributeType(attr)), nil
}

func (c *Cognito) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return classifyCognitoError(err, "confirm sign up")
}

func (c *Cognito) ConfirmSignUpAdmin(ctx context.Context, email string) error {
	_, err := c.client.AdminUpdateUserAttributes(ctx, &cip.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	})
	if err != nil {
		return classifyCognitoError(err, "mark email verified")
	}

	_, err = c.client.AdminConfirmSignUp(ctx, &cip.AdminConfirmSignUpInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	return classifyCognitoError(err, "admin confirm sign up")
}

func (c *Cognito) SignIn(ctx context.Context, email, password string) (*Tokens, error) {
	return c.initiateAuth(ctx, "sign in", types.AuthFlowTypeUserPasswordAuth, map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	})
}

// RefreshTokens exchanges a refresh token for new access and ID tokens. The
// provider does not rotate the refresh token, so it is absent from the result.
func (c *Cognito) RefreshTokens(ctx context.Context, refreshToken string) (*Tokens, error) {
	return c.initiateAuth(ctx, "refresh tokens", types.AuthFlowTypeRefreshTokenAuth, map[string]string{
		"REFRESH_TOKEN": refreshToken,
	})
}

func (c *Cognito) initiateAuth(ctx context.Context, op string, flow types.AuthFlowType, params map[string]string) (*Tokens, error) {
	out, err := c.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId:       aws.String(c.clientID),
		AuthFlow:       flow,
		AuthParameters: params,
	})
	if err != nil {
		return nil, classifyCognitoError(err, op)
	}

	if out.AuthenticationResult == nil {
		return nil, &Error{
			Op:      op,
			Code:    string(out.ChallengeName),
			Message: fmt.Sprintf("Authentication challenge required: %s", out.ChallengeName),
			Err:     ErrChallengeRequired,
		}
	}

	return toTokens(out.AuthenticationResult), nil
}

func (c *Cognito) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	return classifyCognitoError(err, "sign out")
}

func (c *Cognito) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.client.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
	})
	return classifyCognitoError(err, "forgot password")
}

func (c *Cognito) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := c.client.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	return classifyCognitoError(err, "confirm forgot password")
}

func (c *Cognito) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	_, err := c.client.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(currentPassword),
		ProposedPassword: aws.String(newPassword),
	})
	return classifyCognitoError(err, "change password")
}

func (c *Cognito) SetPassword(ctx context.Context, email, password string) error {
	_, err := c.client.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	return classifyCognitoError(err, "set password")
}

func (c *Cognito) GetUser(ctx context.Context, accessToken string) (*User, error) {
	out, err := c.client.GetUser(ctx, &cip.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, classifyCognitoError(err, "get user")
	}

	user := &User{
		Username:   aws.ToString(out.Username),
		Attributes: make(map[string]string, len(out.UserAttributes)),
	}
	for _, a := range out.UserAttributes {
		user.Attributes[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}

	return user, nil
}

func (c *Cognito) UpdateAttributes(ctx context.Context, accessToken string, attrs attribute.Set) error {
	_, err := c.client.UpdateUserAttributes(ctx, &cip.UpdateUserAttributesInput{
		AccessToken:    aws.String(accessToken),
		UserAttributes: toCognitoAttributes(attrs),
	})
	return classifyCognitoError(err, "update attributes")
}

func (c *Cognito) DeleteUser(ctx context.Context, accessToken string) error {
	_, err := c.client.DeleteUser(ctx, &cip.DeleteUserInput{
		AccessToken: aws.String(accessToken),
	})
	return classifyCognitoError(err, "delete user")
}
