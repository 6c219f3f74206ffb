// Package account exposes the account and profile API over an identity
// provider and an object store.
//
// Three services each return a chi router from Handle:
//
//   - AuthService: /auth/sign-up, confirm, confirm-manually, sign-in,
//     refresh, sign-out
//   - PasswordService: /password/forgot, forgot/confirm, change, and the
//     one-time-code reset otp, otp/confirm
//   - ProfileService: /profile (GET, PATCH, DELETE) and the picture routes
//
// Router mounts whichever services are provided. Every response is a JSON
// envelope {"msg": ..., payload...}; failures add an "error" field and are
// rendered by the shared error handler.
//
//	r := account.Router(account.RouterOptions{
//		Auth:     account.NewAuthService(idp, opts...),
//		Password: account.NewPasswordService(idp, codes, mailer, opts...),
//		Profile:  account.NewProfileService(idp, store, opts...),
//	})
package account
