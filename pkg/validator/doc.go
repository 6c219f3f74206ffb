// Package validator checks user-supplied account and profile fields.
//
// Validation is declarative: every field-specific check is a small Rule value
// holding a Check function and the ValidationError reported when the check
// fails. Rules are evaluated with Apply, which stops at the first failing rule,
// so the error a caller sees always names exactly one field.
//
// # Usage
//
//	err := validator.Validate(
//		validator.FieldEmail.With(req.Email),
//		validator.FieldCode.With(req.Code),
//		validator.FieldNewPassword.With(req.NewPassword),
//	)
//	if err != nil {
//		var verr validator.ValidationError
//		if errors.As(err, &verr) {
//			// verr.Field names the offending field, verr.Message is user-facing
//		}
//	}
//
// Fields are checked in the order given. Each field must be non-empty; fields
// with a known name are then checked against their specific rule (see the
// Field* constants). Unknown names only get the required check.
//
// # Time dependence
//
// Birthdate rules depend on the current date and the time-zone rule consults
// the local time-zone database through time.LoadLocation. Use ValidateAt to pin
// the reference date in tests.
package validator
