package otp

import "time"

type Config struct {
	TTL         time.Duration `env:"OTP_TTL" envDefault:"15m"`
	Digits      int           `env:"OTP_DIGITS" envDefault:"6"`
	MaxAttempts int           `env:"OTP_MAX_ATTEMPTS" envDefault:"5"`
}
