// Package auth gates protected routes behind a bearer access token.
//
// Middleware resolves the token with the identity provider and stores both
// the token and the resolved user in the request context. Requests without a
// usable "Authorization: Bearer <token>" header, or whose token the provider
// rejects, get a 401 envelope and never reach the wrapped handler.
//
//	r.Group(func(r chi.Router) {
//		r.Use(auth.Middleware(idp, auth.WithLogger(log)))
//		r.Get("/profile", getProfile)
//	})
//
//	func getProfile(ctx handler.Context, _ struct{}) handler.Response {
//		user := auth.UserFromContext(ctx)
//		...
//	}
package auth
