package core

import "strings"

// Gender is the closed set of values accepted for User.Gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders lists the accepted genders in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Address is a postal address. Line2 is the only optional part.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	State string `json:"state"`
	City  string `json:"city"`
	Pin   string `json:"pin"`
}

// Profile is everything about a user except the id. It is what the form
// edits and what Store.Create accepts.
type Profile struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	LinkedinURL string  `json:"linkedinUrl"`
	Gender      Gender  `json:"gender"`
	Address     Address `json:"address"`
}

// User is a committed directory record. The embedded Profile keeps the JSON
// shape flat: {"id", "name", "email", "linkedinUrl", "gender", "address"}.
type User struct {
	ID string `json:"id"`
	Profile
}

// SameEmail compares emails case-insensitively.
func SameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Field names used as ErrorMap keys and as form input names.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldLinkedinURL = "linkedinUrl"
	FieldGender      = "gender"
	FieldLine1       = "address.line1"
	FieldLine2       = "address.line2"
	FieldState       = "address.state"
	FieldCity        = "address.city"
	FieldPin         = "address.pin"
)

// ErrorMap maps a field name to the message shown next to it. An empty map
// means the draft is valid.
type ErrorMap map[string]string

// Valid reports whether there are no errors.
func (e ErrorMap) Valid() bool { return len(e) == 0 }

// Get returns the message for field, or "".
func (e ErrorMap) Get(field string) string { return e[field] }

func (e ErrorMap) clone() ErrorMap {
	out := make(ErrorMap, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
