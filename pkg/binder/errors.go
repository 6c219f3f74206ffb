package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrRequestTooLarge      = errors.New("request body too large")
	ErrBinderNotApplicable  = errors.New("binder not applicable")
)

// IsBindError reports whether err came from a binder.
func IsBindError(err error) bool {
	return errors.Is(err, ErrFailedToParseJSON) ||
		errors.Is(err, ErrUnsupportedMediaType) ||
		errors.Is(err, ErrRequestTooLarge)
}
