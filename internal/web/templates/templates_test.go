package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/core"
	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func text() config.TextConfig {
	return config.TextConfig{
		PageTitle:      "User Management",
		AddUser:        "Add User",
		AddUserTitle:   "Add New User",
		EditUserTitle:  "Edit User",
		NoUsers:        "No users found",
		NoUsersSubtext: "Add a user to get started",
		Loading:        "Loading users...",
		DeleteTitle:    "Delete User",
		Save:           "Add User",
		Update:         "Update",
		Cancel:         "Cancel",
		Delete:         "Delete",
		Edit:           "Edit",
		LoadCities:     "Load cities",
		ViewProfile:    "View Profile",
		Pin:            "PIN",
		FullAddress:    "Complete Address",
		NotAvailable:   "N/A",

		ColumnName:     "Name",
		ColumnEmail:    "Email",
		ColumnLinkedin: "LinkedIn",
		ColumnGender:   "Gender",
		ColumnAddress:  "Address",
		ColumnActions:  "Actions",

		FieldName:        "Name",
		FieldEmail:       "Email",
		FieldLinkedinURL: "LinkedIn URL",
		FieldGender:      "Gender",
		FieldLine1:       "Address Line 1",
		FieldLine2:       "Address Line 2",
		FieldState:       "State",
		FieldCity:        "City",
		FieldPin:         "PIN Code",

		PlaceholderName:   "Enter full name",
		PlaceholderGender: "Select gender",
		PlaceholderState:  "Select state",
		PlaceholderCity:   "Select city",

		GenderMale:   "Male",
		GenderFemale: "Female",
		GenderOther:  "Other",
	}
}

func ann() core.User {
	return core.User{
		ID: "u-1",
		Profile: core.Profile{
			Name:        "Ann",
			Email:       "ann@x.com",
			LinkedinURL: "https://linkedin.com/in/ann",
			Gender:      core.GenderFemale,
			Address: core.Address{
				Line1: "1 Main",
				State: "Delhi",
				City:  "New Delhi",
				Pin:   "110001",
			},
		},
	}
}

func TestUserTable_States(t *testing.T) {
	tests := []struct {
		name    string
		data    PageData
		want    []string
		notWant []string
	}{
		{
			name:    "loading before hydration",
			data:    PageData{Text: text()},
			want:    []string{"Loading users..."},
			notWant: []string{"<table"},
		},
		{
			name:    "empty list",
			data:    PageData{Text: text(), Hydrated: true},
			want:    []string{"No users found", "Add a user to get started", "<table"},
			notWant: []string{"Loading users..."},
		},
		{
			name: "collapsed row with actions",
			data: PageData{Text: text(), Hydrated: true, CanEdit: true, CanDelete: true,
				Rows: []core.Row{{User: ann()}}},
			want:    []string{"Ann", "ann@x.com", "View Profile", "New Delhi, Delhi", "PIN: 110001", `/form/edit/u-1`, `/rows/u-1/delete`, `aria-expanded="false"`},
			notWant: []string{"Complete Address", "No users found"},
		},
		{
			name: "expanded row shows address",
			data: PageData{Text: text(), Hydrated: true,
				Rows: []core.Row{{User: ann(), Expanded: true}}},
			want:    []string{"Complete Address", "<dd>1 Main</dd>", "<dd>N/A</dd>", `aria-expanded="true"`},
			notWant: []string{"/form/edit/", "/rows/u-1/delete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, UserTable(tt.data))
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q", w)
				}
			}
		})
	}
}

func TestUserTable_EscapesUserInput(t *testing.T) {
	u := ann()
	u.Name = `<script>alert(1)</script>`
	u.LinkedinURL = "javascript:alert(1)"

	out := render(t, UserTable(PageData{Text: text(), Hydrated: true, Rows: []core.Row{{User: u}}}))
	if strings.Contains(out, "<script>") {
		t.Error("name was not escaped")
	}
	if strings.Contains(out, `href="javascript:`) {
		t.Error("unsafe URL was not sanitized")
	}
}

func TestUserForm(t *testing.T) {
	form := FormData{
		Editing: true,
		Draft:   ann().Profile,
		Errors:  core.ErrorMap{core.FieldEmail: "This email is already registered"},
		States:  []string{"Karnataka", "Delhi"},
		Cities:  []string{"New Delhi", "Dwarka"},

		PinMaxLength: 6,
	}

	out := render(t, UserForm(form, text()))

	for _, w := range []string{
		"Edit User",
		`value="Ann"`,
		`<option value="Delhi" selected>`,
		`<option value="New Delhi" selected>`,
		`<option value="Female" selected>`,
		"This email is already registered",
		`maxlength="6"`,
		`action="/form/submit"`,
		`formaction="/form/cancel"`,
		`<button type="submit" class="primary">Update</button>`,
	} {
		if !strings.Contains(out, w) {
			t.Errorf("form missing %q", w)
		}
	}
	if strings.Count(out, `class="err"`) != 1 {
		t.Errorf("want exactly one field error, got %d", strings.Count(out, `class="err"`))
	}
}

func TestUserForm_CreateTitle(t *testing.T) {
	out := render(t, UserForm(FormData{}, text()))
	if !strings.Contains(out, "Add New User") {
		t.Error("create form should use the add title")
	}
	if !strings.Contains(out, `<button type="submit" class="primary">Add User</button>`) {
		t.Error("create form should use the add button label")
	}
	if strings.Contains(out, "maxlength") {
		t.Error("no maxlength expected without a pin cap")
	}
}

func TestUserForm_LabelsFromConfig(t *testing.T) {
	tx := text()
	tx.FieldName = "Full name"
	tx.PlaceholderCity = "Pick a city"
	tx.GenderFemale = "Woman"
	tx.LoadCities = "Refresh cities"

	form := FormData{Draft: ann().Profile, States: []string{"Delhi"}}
	out := render(t, UserForm(form, tx))

	for _, w := range []string{
		`<label for="name">Full name <span class="req">*</span></label>`,
		`<option value="">Pick a city</option>`,
		`<option value="Female" selected>Woman</option>`,
		"Refresh cities",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("form missing %q", w)
		}
	}
	if strings.Contains(out, ">Female</option>") {
		t.Error("gender option should use the configured label")
	}
}

func TestUserTable_LabelsFromConfig(t *testing.T) {
	tx := text()
	tx.ColumnLinkedin = "Profile"
	tx.ViewProfile = "Open"
	tx.GenderFemale = "Woman"

	out := render(t, UserTable(PageData{Text: tx, Hydrated: true, Rows: []core.Row{{User: ann()}}}))
	for _, w := range []string{"<th>Profile</th>", ">Open</a>", "<td>Woman</td>"} {
		if !strings.Contains(out, w) {
			t.Errorf("table missing %q", w)
		}
	}
}

func TestPage(t *testing.T) {
	u := ann()
	data := PageData{
		Text:     text(),
		Hydrated: true,
		Rows:     []core.Row{{User: u}},
		Pending:  &u,
		Alert:    &core.UserMessage{Message: "Changes could not be saved", Code: "STO001"},
	}

	out := render(t, Page(data))
	for _, w := range []string{"<!doctype html>", "<title>User Management</title>", "Delete User", "/delete/confirm", "STO001"} {
		if !strings.Contains(out, w) {
			t.Errorf("page missing %q", w)
		}
	}
	if strings.Contains(out, `class="modal"`) {
		t.Error("form should not render when closed")
	}
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Something broke", "Try again", "ERR000"))
	if !strings.Contains(out, `role="alert"`) || !strings.Contains(out, "ERR000") {
		t.Errorf("unexpected alert: %s", out)
	}
}
