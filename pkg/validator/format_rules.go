package validator

import (
	"regexp"
	"slices"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Verification codes issued by the identity provider are purely numeric.
	codeRegex = regexp.MustCompile(`^[0-9]{4,10}$`)

	// Letters, spaces, hyphens and apostrophes, e.g. "Mary-Jane O'Connor".
	personNameRegex = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)

	// E.164: + followed by country code and subscriber number, 15 digits max.
	e164Regex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

	allowedGenders = []string{"male", "female", "other", "prefer-not-to-say", "m", "f", "o"}
)

const (
	personNameMinLen = 2
	personNameMaxLen = 50
)

// ValidEmail checks the local@domain.tld shape.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{Field: field, Message: "Invalid email"},
	}
}

// VerificationCode accepts 4 to 10 ASCII digits.
func VerificationCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return codeRegex.MatchString(value)
		},
		Error: ValidationError{Field: field, Message: "Invalid code"},
	}
}

func PersonName(field, value string) []Rule {
	return []Rule{
		{
			Check: func() bool {
				return personNameRegex.MatchString(value)
			},
			Error: ValidationError{
				Field:   field,
				Message: "Name must contain only letters, spaces, hyphens, and apostrophes",
			},
		},
		{
			Check: func() bool {
				return len(value) >= personNameMinLen
			},
			Error: ValidationError{Field: field, Message: "Name must be at least 2 characters long"},
		},
		{
			Check: func() bool {
				return len(value) <= personNameMaxLen
			},
			Error: ValidationError{Field: field, Message: "Name must be less than 50 characters"},
		},
	}
}

func E164Phone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return e164Regex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "Invalid phone number. Must be in E.164 format (e.g., +1234567890)",
		},
	}
}

// Gender accepts the allowed values case-insensitively.
func Gender(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowedGenders, strings.ToLower(value))
		},
		Error: ValidationError{
			Field:   field,
			Message: "Invalid gender. Must be one of: male, female, other, prefer-not-to-say, M, F, O",
		},
	}
}
