package otp

import "errors"

var (
	ErrInvalidCode      = errors.New("Invalid or expired code")
	ErrTooManyAttempts  = errors.New("Too many attempts. Please request a new code.")
	ErrNotFound         = errors.New("otp: record not found")
	ErrFailedToGenerate = errors.New("otp: failed to generate code")
	ErrStoreUnavailable = errors.New("otp: store unavailable")
	ErrInvalidSubject   = errors.New("otp: empty subject")
)
