// Package handler provides type-safe HTTP request handling for the account API.
//
// A HandlerFunc receives a bound request struct and returns a Response.
// Wrap turns it into an http.HandlerFunc, running binders first and routing
// every failure (bind, handler or render) through a single ErrorHandler, so
// failures are logged and rendered the same way everywhere:
//
//	type ConfirmRequest struct {
//		Email string `json:"email"`
//		Code  string `json:"code"`
//	}
//
//	func confirm(ctx handler.Context, req ConfirmRequest) handler.Response {
//		if err := idp.ConfirmSignUp(ctx, req.Email, req.Code); err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON("Account successfully confirmed!")
//	}
//
//	r.Post("/auth/confirm", handler.Wrap(confirm, handler.Route{
//		Binders:      []handler.Bind{binder.JSON()},
//		ErrorHandler: handler.NewErrorHandler(log),
//	}))
//
// # Envelope
//
// Every response body is a JSON object with a human-readable "msg" and,
// on success, optional payload keys next to it:
//
//	{"msg": "User successfully signed in!", "tokens": {...}}
//	{"msg": "Invalid code", "error": "validation failed"}
//
// # Errors
//
// NewErrorHandler classifies errors into a status and message:
// validation failures and malformed bodies become 400, HTTPError values keep
// their own status, and any other error (typically a provider failure) is a
// 400 carrying the error's own message.
package handler
