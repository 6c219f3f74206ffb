package attribute

import "github.com/dmitrymomot/userkit/pkg/validator"

// Key enumerates the profile attributes a client may set.
type Key int

const (
	KeyName Key = iota
	KeyEmail
	KeyPhoneNumber
	KeyGender
	KeyTimeZone
	KeyBirthdate
	KeyPicture
	KeyUpdatedAt
)

type keyInfo struct {
	canonical string
	field     validator.FieldName
}

var keys = map[Key]keyInfo{
	KeyName:        {canonical: "name", field: validator.FieldPersonName},
	KeyEmail:       {canonical: "email", field: validator.FieldEmail},
	KeyPhoneNumber: {canonical: "phone_number", field: validator.FieldPhoneNumber},
	KeyGender:      {canonical: "gender", field: validator.FieldGender},
	KeyTimeZone:    {canonical: "zoneinfo", field: validator.FieldTimeZone},
	KeyBirthdate:   {canonical: "birthdate", field: validator.FieldBirthdate},
	KeyPicture:     {canonical: "picture", field: validator.FieldPicture},
	KeyUpdatedAt:   {canonical: "updated_at"},
}

// Canonical returns the attribute name used by the identity provider.
func (k Key) Canonical() string {
	return keys[k].canonical
}

// Field returns the validator field name for user-supplied keys. It is empty
// for KeyUpdatedAt, which is never supplied by clients.
func (k Key) Field() validator.FieldName {
	return keys[k].field
}

func (k Key) String() string {
	if info, ok := keys[k]; ok {
		return info.canonical
	}
	return "unknown"
}
