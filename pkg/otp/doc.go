// Package otp issues and verifies short numeric one-time codes.
//
// Codes are stored as bcrypt hashes keyed by a normalized subject (an email
// address for password resets). A code expires after its TTL, is consumed by
// the first successful verification, and is discarded after too many wrong
// guesses. Storage is pluggable: MemoryStore for a single process and
// RedisStore when several instances share state.
//
//	svc := otp.NewService(otp.NewRedisStore(client), otp.WithTTL(15*time.Minute))
//	code, err := svc.Issue(ctx, "ann@example.com")
//	...
//	if err := svc.Verify(ctx, "ann@example.com", input); err != nil {
//		// otp.ErrInvalidCode or otp.ErrTooManyAttempts
//	}
package otp
