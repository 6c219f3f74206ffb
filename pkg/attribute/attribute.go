package attribute

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/userkit/pkg/validator"
)

// Attribute is a single named value sent to the identity provider.
type Attribute struct {
	Name  string
	Value string
}

// Set is an ordered attribute list. Duplicate names are passed through as-is.
type Set []Attribute

// Profile is the sparse input record. Empty fields are treated as absent.
type Profile struct {
	Name        string
	Email       string
	PhoneNumber string
	Gender      string
	TimeZone    string
	Birthdate   string
	Picture     string
}

type entry struct {
	key   Key
	value string
}

func (p Profile) entries() []entry {
	return []entry{
		{KeyName, p.Name},
		{KeyEmail, p.Email},
		{KeyPhoneNumber, p.PhoneNumber},
		{KeyGender, p.Gender},
		{KeyTimeZone, p.TimeZone},
		{KeyBirthdate, p.Birthdate},
		{KeyPicture, p.Picture},
	}
}

// Build validates each present field of p in the fixed order name, email,
// phoneNumber, gender, timeZone, birthdate, picture and returns the attribute
// set terminated by updated_at. The first validation failure is returned and
// no set is produced.
func Build(p Profile, now time.Time) (Set, error) {
	set := make(Set, 0, len(keys))

	for _, e := range p.entries() {
		if e.value == "" {
			continue
		}
		if err := validator.ValidateAt(now, e.key.Field().With(e.value)); err != nil {
			return nil, err
		}
		set = append(set, Attribute{Name: e.key.Canonical(), Value: e.value})
	}

	return append(set, UpdatedAt(now)), nil
}

// UpdatedAt returns the synthetic last-modified attribute for now.
func UpdatedAt(now time.Time) Attribute {
	return Attribute{
		Name:  KeyUpdatedAt.Canonical(),
		Value: strconv.FormatInt(now.UnixMilli(), 10),
	}
}

// Names lists attribute names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, a := range s {
		names[i] = a.Name
	}
	return names
}

// Get returns the value of the last attribute named name.
func (s Set) Get(name string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Name == name {
			return s[i].Value, true
		}
	}
	return "", false
}
