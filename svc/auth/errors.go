package auth

import "errors"

// ErrMissingToken is returned by token extractors when the request carries
// no usable bearer token.
var ErrMissingToken = errors.New("Unauthorized - Missing or invalid authorization header")
