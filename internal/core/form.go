package core

// form.go drives the add/edit form.
//
// A session is Closed, OpenForCreate or OpenForEdit. While open it owns a
// draft Profile, the per-field error map and the city options for the
// selected state. Each input has its own function: it sanitizes the raw
// value, stores it in the draft and clears that field's error. Full
// validation only runs on Submit.

import (
	"context"
	"strings"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/refdata"
)

// FormMode is the state of a FormSession.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormEdit
)

func (m FormMode) String() string {
	switch m {
	case FormCreate:
		return "create"
	case FormEdit:
		return "edit"
	default:
		return "closed"
	}
}

// FormSession is the controller behind the user form.
type FormSession struct {
	store     *Store
	validator *Validator
	ref       refdata.Provider
	features  config.FeaturesConfig
	pinMax    int

	mode      FormMode
	editingID string
	draft     Profile
	errors    ErrorMap
	cities    []string
}

// NewFormSession returns a closed session.
func NewFormSession(store *Store, validator *Validator, ref refdata.Provider, features config.FeaturesConfig, pinMaxLength int) *FormSession {
	return &FormSession{
		store:     store,
		validator: validator,
		ref:       ref,
		features:  features,
		pinMax:    pinMaxLength,
		errors:    ErrorMap{},
		cities:    []string{},
	}
}

// OpenForCreate opens an empty form. Any draft in progress is discarded.
func (f *FormSession) OpenForCreate() {
	f.reset()
	f.mode = FormCreate
}

// OpenForEdit opens the form on a copy of user's profile with the city
// options of the user's state.
func (f *FormSession) OpenForEdit(user User) error {
	if !f.features.EditableUsers {
		return ErrEditDisabled
	}
	f.reset()
	f.mode = FormEdit
	f.editingID = user.ID
	f.draft = user.Profile
	if user.Address.State != "" {
		f.cities = f.ref.CitiesOf(user.Address.State)
	}
	return nil
}

// Cancel closes the form without touching the store.
func (f *FormSession) Cancel() {
	f.reset()
}

func (f *FormSession) reset() {
	f.mode = FormClosed
	f.editingID = ""
	f.draft = Profile{}
	f.errors = ErrorMap{}
	f.cities = []string{}
}

// Submit validates the draft against the current users. With errors the
// form stays open and Submit returns false. Otherwise the draft is created
// or applied to the edited user, the form closes and Submit returns true.
// A store failure is returned and leaves the form open.
func (f *FormSession) Submit(ctx context.Context) (bool, error) {
	if f.mode == FormClosed {
		return false, ErrFormClosed
	}

	errs := f.validator.Validate(f.draft, f.store.Users(), f.editingID)
	if !errs.Valid() {
		f.errors = errs
		return false, nil
	}

	var err error
	if f.mode == FormEdit {
		err = f.store.Update(ctx, User{ID: f.editingID, Profile: f.draft})
	} else {
		_, err = f.store.Create(ctx, f.draft)
	}
	if err != nil {
		return false, err
	}

	f.reset()
	return true, nil
}

func (f *FormSession) SetName(v string) error {
	return f.input(FieldName, func(p *Profile) { p.Name = v })
}

func (f *FormSession) SetEmail(v string) error {
	return f.input(FieldEmail, func(p *Profile) { p.Email = v })
}

func (f *FormSession) SetLinkedinURL(v string) error {
	return f.input(FieldLinkedinURL, func(p *Profile) { p.LinkedinURL = v })
}

func (f *FormSession) SetGender(v string) error {
	return f.input(FieldGender, func(p *Profile) { p.Gender = Gender(v) })
}

func (f *FormSession) SetLine1(v string) error {
	return f.input(FieldLine1, func(p *Profile) { p.Address.Line1 = v })
}

func (f *FormSession) SetLine2(v string) error {
	return f.input(FieldLine2, func(p *Profile) { p.Address.Line2 = v })
}

func (f *FormSession) SetCity(v string) error {
	return f.input(FieldCity, func(p *Profile) { p.Address.City = v })
}

// SetPin keeps only digits, truncated to the configured length.
func (f *FormSession) SetPin(v string) error {
	pin := SanitizePin(v, f.pinMax)
	return f.input(FieldPin, func(p *Profile) { p.Address.Pin = pin })
}

// SelectState switches the state, clears the city and reloads the city
// options. The state error is cleared until the next Submit.
func (f *FormSession) SelectState(state string) error {
	if f.mode == FormClosed {
		return ErrFormClosed
	}
	f.draft.Address.State = state
	f.draft.Address.City = ""
	f.cities = f.ref.CitiesOf(state)
	delete(f.errors, FieldState)
	return nil
}

func (f *FormSession) input(field string, apply func(*Profile)) error {
	if f.mode == FormClosed {
		return ErrFormClosed
	}
	apply(&f.draft)
	delete(f.errors, field)
	return nil
}

// SanitizePin drops everything but ASCII digits and truncates to max digits. A
// non-positive max disables truncation.
func SanitizePin(raw string, max int) string {
	var b strings.Builder
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		if max > 0 && n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// Mode returns the current state.
func (f *FormSession) Mode() FormMode { return f.mode }

// IsOpen reports whether the form is shown.
func (f *FormSession) IsOpen() bool { return f.mode != FormClosed }

// EditingID is the id of the user being edited, or "".
func (f *FormSession) EditingID() string { return f.editingID }

// Draft returns a copy of the draft.
func (f *FormSession) Draft() Profile { return f.draft }

// Errors returns a copy of the current error map.
func (f *FormSession) Errors() ErrorMap { return f.errors.clone() }

// Cities returns the city options for the selected state.
func (f *FormSession) Cities() []string {
	out := make([]string, len(f.cities))
	copy(out, f.cities)
	return out
}

// States returns every selectable state.
func (f *FormSession) States() []string { return f.ref.ListStates() }
