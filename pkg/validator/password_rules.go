package validator

import (
	"regexp"
	"unicode/utf8"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_\-+=\[\]{};':"\\|,.<>/?~` + "`" + `]`)
)

const passwordMinLen = 8

// PasswordPolicy mirrors the user pool password policy: at least 8 characters
// with a lowercase letter, an uppercase letter, a digit and a symbol.
// label prefixes the messages ("Password", "New password").
func PasswordPolicy(field, value, label string) []Rule {
	return []Rule{
		{
			Check: func() bool {
				return utf8.RuneCountInString(value) >= passwordMinLen
			},
			Error: ValidationError{
				Field:   field,
				Message: label + " must be at least 8 characters long",
			},
		},
		{
			Check: func() bool {
				return lowercaseRegex.MatchString(value) &&
					uppercaseRegex.MatchString(value) &&
					digitRegex.MatchString(value) &&
					specialCharRegex.MatchString(value)
			},
			Error: ValidationError{
				Field:   field,
				Message: label + " must contain at least one lowercase letter, one uppercase letter, one number, and one special character",
			},
		},
	}
}
