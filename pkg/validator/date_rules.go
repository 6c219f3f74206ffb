package validator

import (
	"regexp"
	"time"
)

const (
	dateLayout = "2006-01-02"

	minAge = 13
	maxAge = 150
)

var (
	// IANA Area/Location, e.g. America/New_York, Asia/Kolkata.
	timeZoneRegex = regexp.MustCompile(`^[A-Za-z_]+/[A-Za-z_]+$`)

	birthdateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// TimeZone requires the Area/Location shape and a zone known to the local
// time-zone database.
func TimeZone(field, value string) []Rule {
	return []Rule{
		{
			Check: func() bool {
				return timeZoneRegex.MatchString(value)
			},
			Error: ValidationError{
				Field:   field,
				Message: "Invalid timezone format. Must be in IANA format (e.g., America/New_York, Asia/Kolkata)",
			},
		},
		{
			Check: func() bool {
				_, err := time.LoadLocation(value)
				return err == nil
			},
			Error: ValidationError{Field: field, Message: "Invalid timezone. Timezone not recognized."},
		},
	}
}

// Birthdate requires a real YYYY-MM-DD date, not after now, for an age
// between 13 and 150 inclusive.
func Birthdate(field, value string, now time.Time) []Rule {
	date, parseErr := time.Parse(dateLayout, value)

	return []Rule{
		{
			Check: func() bool {
				return birthdateRegex.MatchString(value)
			},
			Error: ValidationError{
				Field:   field,
				Message: "Invalid birthdate format. Must be YYYY-MM-DD (e.g., 1990-01-15)",
			},
		},
		{
			Check: func() bool {
				return parseErr == nil
			},
			Error: ValidationError{Field: field, Message: "Invalid birthdate. Date is not valid."},
		},
		{
			Check: func() bool {
				return !date.After(now)
			},
			Error: ValidationError{Field: field, Message: "Invalid birthdate. Birthdate cannot be in the future."},
		},
		{
			Check: func() bool {
				return AgeAt(date, now) >= minAge
			},
			Error: ValidationError{Field: field, Message: "Invalid birthdate. User must be at least 13 years old."},
		},
		{
			Check: func() bool {
				return AgeAt(date, now) <= maxAge
			},
			Error: ValidationError{Field: field, Message: "Invalid birthdate. Age seems unrealistic."},
		},
	}
}

// AgeAt returns full years between birth and now, one less when this year's
// birthday has not been reached yet.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
