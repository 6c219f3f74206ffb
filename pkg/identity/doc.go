// Package identity talks to the managed identity provider that owns user
// credentials, registration state and profile attributes.
//
// Provider is the capability set the HTTP layer depends on. Cognito
// implements it over the AWS SDK v2 Cognito Identity Provider client:
//
//	idp, err := identity.NewCognito(ctx, identity.CognitoConfig{
//		Region:     "us-east-1",
//		UserPoolID: "us-east-1_example",
//		ClientID:   "client-id",
//	}, identity.WithAWSConfig(awsCfg))
//
// Provider failures are returned as *Error, which keeps the provider's error
// code and its user-facing message. Error matches the package sentinels with
// errors.Is, so callers can branch on ErrNotAuthorized, ErrCodeMismatch and
// friends without inspecting codes.
//
// Users are addressed by email: sign-up registers the email as username.
package identity
