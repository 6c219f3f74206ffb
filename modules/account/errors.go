package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/userkit/handler"
	"github.com/dmitrymomot/userkit/pkg/validator"
)

var (
	ErrSignUpFieldsRequired = handler.NewHTTPError(http.StatusUnprocessableEntity, "Name, email, and password are required")
	ErrRefreshTokenRequired = validator.ValidationError{Field: "refreshToken", Message: "Refresh token is required"}
	ErrNoProfilePicture     = errors.New("No profile picture found")
	ErrForeignPicture       = errors.New("Picture does not belong to this user")
	ErrMissingIdentity      = handler.ErrUnauthorized
)
