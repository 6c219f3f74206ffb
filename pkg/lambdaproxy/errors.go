package lambdaproxy

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid proxy request")
	ErrInvalidBody    = errors.New("invalid base64 request body")
)
