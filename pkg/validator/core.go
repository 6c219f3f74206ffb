package validator

import "errors"

// ValidationError describes a single field that failed validation.
// Message is safe to show to end users.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrValidationFailed, so callers can match any
// field failure with errors.Is.
func (e ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes rules in order and returns the first failure.
// Later rules may assume earlier ones passed.
func Apply(rules ...Rule) error {
	for _, rule := range rules {
		if !rule.Check() {
			return rule.Error
		}
	}
	return nil
}

// ExtractValidationError returns the ValidationError wrapped in err, if any.
func ExtractValidationError(err error) (ValidationError, bool) {
	var verr ValidationError
	if err == nil || !errors.As(err, &verr) {
		return ValidationError{}, false
	}
	return verr, true
}

func IsValidationError(err error) bool {
	_, ok := ExtractValidationError(err)
	return ok
}
