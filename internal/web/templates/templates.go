// Package templates renders the user directory page as templ components.
//
// The *_templ.go files are generated from the .templ sources. Run go generate
// after editing a .templ file.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"net/url"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/core"
)

// PageData is everything the page needs for one render.
type PageData struct {
	Text      config.TextConfig
	Hydrated  bool
	Rows      []core.Row
	CanEdit   bool
	CanDelete bool
	Form      *FormData
	Pending   *core.User
	Alert     *core.UserMessage
}

// FormData describes an open form.
type FormData struct {
	Editing bool
	Draft   core.Profile
	Errors  core.ErrorMap
	States  []string
	Cities  []string

	PinMaxLength int
}

type option struct {
	Value string
	Label string
}

// field is one labelled control in the user form. Select fields render
// Options; the rest render an input of Type.
type field struct {
	Name        string
	Label       string
	Value       string
	Placeholder string
	Type        string
	Required    bool

	Select        bool
	Options       []option
	ReloadsCities bool

	Numeric   bool
	MaxLength int
}

func rowPath(id, action string) string {
	return "/rows/" + url.PathEscape(id) + "/" + action
}

func editPath(id string) string {
	return "/form/edit/" + url.PathEscape(id)
}

func expandedAttr(expanded bool) string {
	if expanded {
		return "true"
	}
	return "false"
}

func genderLabel(text config.TextConfig, g core.Gender) string {
	switch g {
	case core.GenderMale:
		return text.GenderMale
	case core.GenderFemale:
		return text.GenderFemale
	case core.GenderOther:
		return text.GenderOther
	}
	return string(g)
}

func cityState(a core.Address) string {
	return a.City + ", " + a.State
}

func orNA(v, na string) string {
	if v == "" {
		return na
	}
	return v
}

// addressFacts lists the expanded address grid in display order.
func addressFacts(a core.Address, text config.TextConfig) []option {
	return []option{
		{Label: text.FieldLine1, Value: orNA(a.Line1, text.NotAvailable)},
		{Label: text.FieldLine2, Value: orNA(a.Line2, text.NotAvailable)},
		{Label: text.FieldCity, Value: orNA(a.City, text.NotAvailable)},
		{Label: text.FieldState, Value: orNA(a.State, text.NotAvailable)},
		{Label: text.FieldPin, Value: orNA(a.Pin, text.NotAvailable)},
	}
}

func formTitle(form FormData, text config.TextConfig) string {
	if form.Editing {
		return text.EditUserTitle
	}
	return text.AddUserTitle
}

func submitLabel(form FormData, text config.TextConfig) string {
	if form.Editing {
		return text.Update
	}
	return text.Save
}

func plainOptions(values []string) []option {
	opts := make([]option, 0, len(values))
	for _, v := range values {
		opts = append(opts, option{Value: v, Label: v})
	}
	return opts
}

func genderOptions(text config.TextConfig) []option {
	genders := core.Genders()
	opts := make([]option, 0, len(genders))
	for _, g := range genders {
		opts = append(opts, option{Value: string(g), Label: genderLabel(text, g)})
	}
	return opts
}

// formFields lays out the user form. State comes before city so a state
// change can repost the form and refill the city list.
func formFields(form FormData, text config.TextConfig) []field {
	d := form.Draft
	return []field{
		{Name: core.FieldName, Label: text.FieldName, Value: d.Name, Placeholder: text.PlaceholderName, Type: "text", Required: true},
		{Name: core.FieldEmail, Label: text.FieldEmail, Value: d.Email, Placeholder: text.PlaceholderEmail, Type: "email", Required: true},
		{Name: core.FieldLinkedinURL, Label: text.FieldLinkedinURL, Value: d.LinkedinURL, Placeholder: text.PlaceholderLinkedinURL, Type: "url", Required: true},
		{Name: core.FieldGender, Label: text.FieldGender, Value: string(d.Gender), Placeholder: text.PlaceholderGender, Required: true, Select: true, Options: genderOptions(text)},
		{Name: core.FieldLine1, Label: text.FieldLine1, Value: d.Address.Line1, Placeholder: text.PlaceholderLine1, Type: "text", Required: true},
		{Name: core.FieldLine2, Label: text.FieldLine2, Value: d.Address.Line2, Placeholder: text.PlaceholderLine2, Type: "text"},
		{Name: core.FieldState, Label: text.FieldState, Value: d.Address.State, Placeholder: text.PlaceholderState, Required: true, Select: true, Options: plainOptions(form.States), ReloadsCities: true},
		{Name: core.FieldCity, Label: text.FieldCity, Value: d.Address.City, Placeholder: text.PlaceholderCity, Required: true, Select: true, Options: plainOptions(form.Cities)},
		{Name: core.FieldPin, Label: text.FieldPin, Value: d.Address.Pin, Placeholder: text.PlaceholderPin, Type: "text", Required: true, Numeric: true, MaxLength: form.PinMaxLength},
	}
}
