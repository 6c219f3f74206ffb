package validator

import (
	"fmt"
	"time"
)

// FieldName identifies a user-supplied field. Names match the JSON keys
// clients send.
type FieldName string

const (
	FieldEmail           FieldName = "email"
	FieldPassword        FieldName = "password"
	FieldNewPassword     FieldName = "newPassword"
	FieldCurrentPassword FieldName = "currentPassword"
	FieldCode            FieldName = "code"
	FieldPersonName      FieldName = "name"
	FieldPhoneNumber     FieldName = "phoneNumber"
	FieldGender          FieldName = "gender"
	FieldTimeZone        FieldName = "timeZone"
	FieldBirthdate       FieldName = "birthdate"
	FieldPicture         FieldName = "picture"
	FieldFilename        FieldName = "filename"
	FieldFileType        FieldName = "fileType"
	FieldRefreshToken    FieldName = "refreshToken"
)

// Field pairs a field name with its raw value.
type Field struct {
	Name  FieldName
	Value string
}

// With builds a Field carrying value under this name.
func (n FieldName) With(value string) Field {
	return Field{Name: n, Value: value}
}

// Validate checks fields in order against the current time and returns the
// first ValidationError.
func Validate(fields ...Field) error {
	return ValidateAt(time.Now(), fields...)
}

// ValidateAt is Validate with an explicit reference time for date rules.
func ValidateAt(now time.Time, fields ...Field) error {
	for _, f := range fields {
		if err := Apply(FieldRules(f, now)...); err != nil {
			return err
		}
	}
	return nil
}

// FieldRules returns the ordered rules for a single field: the required check
// followed by the field-specific rules, if the name is known.
func FieldRules(f Field, now time.Time) []Rule {
	name := string(f.Name)
	rules := []Rule{Required(name, f.Value)}

	switch f.Name {
	case FieldEmail:
		rules = append(rules, ValidEmail(name, f.Value))
	case FieldPassword:
		rules = append(rules, PasswordPolicy(name, f.Value, "Password")...)
	case FieldNewPassword:
		rules = append(rules, PasswordPolicy(name, f.Value, "New password")...)
	case FieldCode:
		rules = append(rules, VerificationCode(name, f.Value))
	case FieldPersonName:
		rules = append(rules, PersonName(name, f.Value)...)
	case FieldPhoneNumber:
		rules = append(rules, E164Phone(name, f.Value))
	case FieldGender:
		rules = append(rules, Gender(name, f.Value))
	case FieldTimeZone:
		rules = append(rules, TimeZone(name, f.Value)...)
	case FieldBirthdate:
		rules = append(rules, Birthdate(name, f.Value, now)...)
	case FieldPicture:
		rules = append(rules, PictureURL(name, f.Value)...)
	case FieldFilename:
		rules = append(rules, ImageFilename(name, f.Value)...)
	case FieldFileType:
		rules = append(rules, ImageContentType(name, f.Value))
	}

	return rules
}

// Required fails for an empty value. Whitespace counts as a value; the
// field-specific rules decide whether it is acceptable.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Field %s is required", field),
		},
	}
}
