package core

// validation.go checks a candidate profile before it reaches the store.
//
// Every field is checked independently and all failures are collected, but
// each field reports at most one message. Within a field the order is:
//  1. Required: empty after trimming
//  2. Shape: length bounds, regular expression, enum or lookup membership
//  3. Uniqueness (email only): no other user has the same email, ignoring case
//
// The validator is pure. It never touches the store; callers pass the current
// user list and, when editing, the id of the record being edited so that a
// user's own unchanged email is not reported as a duplicate.

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/refdata"
)

// Validator validates profiles against the configured field rules.
type Validator struct {
	nameMin     int
	nameMax     int
	email       *regexp.Regexp
	linkedinURL *regexp.Regexp
	pin         *regexp.Regexp
	msgs        config.MessagesConfig
	ref         refdata.Provider
}

// NewValidator compiles the configured patterns.
func NewValidator(rules config.ValidationConfig, msgs config.MessagesConfig, ref refdata.Provider) (*Validator, error) {
	email, err := regexp.Compile(rules.EmailPattern)
	if err != nil {
		return nil, fmt.Errorf("compile email pattern: %w", err)
	}
	linkedinURL, err := regexp.Compile(rules.LinkedinURLPattern)
	if err != nil {
		return nil, fmt.Errorf("compile linkedin url pattern: %w", err)
	}
	pin, err := regexp.Compile(rules.PinPattern)
	if err != nil {
		return nil, fmt.Errorf("compile pin pattern: %w", err)
	}

	return &Validator{
		nameMin:     rules.NameMinLength,
		nameMax:     rules.NameMaxLength,
		email:       email,
		linkedinURL: linkedinURL,
		pin:         pin,
		msgs:        msgs,
		ref:         ref,
	}, nil
}

// Validate returns the errors found in draft. existing is the current user
// list; editingID is the id of the user being edited, or "" when creating.
func (v *Validator) Validate(draft Profile, existing []User, editingID string) ErrorMap {
	errs := ErrorMap{}

	set := func(field, msg string) {
		if msg != "" {
			errs[field] = msg
		}
	}

	set(FieldName, v.checkName(draft.Name))
	set(FieldEmail, v.checkEmail(draft.Email, existing, editingID))
	set(FieldLinkedinURL, v.checkPattern(draft.LinkedinURL, v.linkedinURL, v.msgs.InvalidURL))
	set(FieldGender, v.checkGender(draft.Gender))
	set(FieldLine1, v.required(draft.Address.Line1))
	set(FieldState, v.required(draft.Address.State))
	set(FieldCity, v.checkCity(draft.Address.State, draft.Address.City))
	set(FieldPin, v.checkPattern(draft.Address.Pin, v.pin, v.msgs.Digits))

	return errs
}

func (v *Validator) required(value string) string {
	if strings.TrimSpace(value) == "" {
		return v.msgs.Required
	}
	return ""
}

func (v *Validator) checkName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return v.msgs.Required
	}

	n := utf8.RuneCountInString(trimmed)
	switch {
	case n < v.nameMin:
		return fmt.Sprintf("%s %d %s", v.msgs.MinChars, v.nameMin, v.msgs.Chars)
	case n > v.nameMax:
		return fmt.Sprintf("%s %d %s", v.msgs.MaxChars, v.nameMax, v.msgs.Chars)
	}
	return ""
}

func (v *Validator) checkEmail(email string, existing []User, editingID string) string {
	if msg := v.checkPattern(email, v.email, v.msgs.InvalidEmail); msg != "" {
		return msg
	}
	for _, u := range existing {
		if editingID != "" && u.ID == editingID {
			continue
		}
		if SameEmail(u.Email, email) {
			return v.msgs.DuplicateEmail
		}
	}
	return ""
}

// checkPattern applies the required check, then re.
func (v *Validator) checkPattern(value string, re *regexp.Regexp, invalid string) string {
	if msg := v.required(value); msg != "" {
		return msg
	}
	if !re.MatchString(value) {
		return invalid
	}
	return ""
}

func (v *Validator) checkGender(g Gender) string {
	if msg := v.required(string(g)); msg != "" {
		return msg
	}
	if !g.Valid() {
		return v.msgs.InvalidGender
	}
	return ""
}

func (v *Validator) checkCity(state, city string) string {
	if msg := v.required(city); msg != "" {
		return msg
	}
	if strings.TrimSpace(state) != "" && !refdata.HasCity(v.ref, state, city) {
		return v.msgs.InvalidCity
	}
	return ""
}
