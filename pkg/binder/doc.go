// Package binder decodes HTTP request bodies into typed request structs.
//
// JSON is the only binder the account API needs. It is strict: unknown
// fields, trailing data and bodies over the size limit are rejected, so a
// client cannot smuggle attribute names the API does not know about.
//
//	type SignInRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	mux.Post("/auth/sign-in", handler.Wrap(signIn, handler.Route{
//		Binders: []handler.Bind{binder.JSON()},
//	}))
//
// String values are passed through untouched; passwords and codes must reach
// the identity provider byte-for-byte.
//
// All failures wrap one of the package sentinels (ErrFailedToParseJSON,
// ErrUnsupportedMediaType, ErrRequestTooLarge), which the handler layer maps
// to a 400 response.
package binder
