package core

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/refdata"
	"github.com/JonMunkholm/userdir/internal/storage"
)

func newTestForm(t *testing.T, kv storage.KV, features config.FeaturesConfig) (*FormSession, *Store) {
	t.Helper()
	store := newTestStore(t, kv)
	form := NewFormSession(store, newTestValidator(t), refdata.NewStatic(), features, 6)
	return form, store
}

var allFeatures = config.FeaturesConfig{EditableUsers: true, DeletableUsers: true}

// fill types p into the form field by field.
func fill(t *testing.T, f *FormSession, p Profile) {
	t.Helper()
	steps := []error{
		f.SetName(p.Name),
		f.SetEmail(p.Email),
		f.SetLinkedinURL(p.LinkedinURL),
		f.SetGender(string(p.Gender)),
		f.SetLine1(p.Address.Line1),
		f.SetLine2(p.Address.Line2),
		f.SelectState(p.Address.State),
		f.SetCity(p.Address.City),
		f.SetPin(p.Address.Pin),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
	}
}

func TestForm_StartsClosed(t *testing.T) {
	f, _ := newTestForm(t, storage.NewMemoryKV(), allFeatures)

	if f.IsOpen() || f.Mode() != FormClosed {
		t.Errorf("new form mode = %v, want closed", f.Mode())
	}
	if err := f.SetName("x"); !errors.Is(err, ErrFormClosed) {
		t.Errorf("SetName on closed form: err = %v, want ErrFormClosed", err)
	}
	if err := f.SelectState("Delhi"); !errors.Is(err, ErrFormClosed) {
		t.Errorf("SelectState on closed form: err = %v, want ErrFormClosed", err)
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrFormClosed) {
		t.Errorf("Submit on closed form: err = %v, want ErrFormClosed", err)
	}
}

func TestForm_CreateFlow(t *testing.T) {
	f, store := newTestForm(t, storage.NewMemoryKV(), allFeatures)

	f.OpenForCreate()
	if f.Mode() != FormCreate {
		t.Fatalf("mode = %v, want create", f.Mode())
	}
	if f.Draft() != (Profile{}) || len(f.Errors()) != 0 || len(f.Cities()) != 0 {
		t.Fatalf("create form not reset: draft=%+v errors=%v cities=%v", f.Draft(), f.Errors(), f.Cities())
	}

	fill(t, f, annProfile())
	ok, err := f.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v; errors %v", ok, err, f.Errors())
	}

	if f.IsOpen() {
		t.Error("form still open after successful submit")
	}
	users := store.Users()
	if len(users) != 1 || users[0].Profile != annProfile() {
		t.Errorf("store = %+v", users)
	}
}

// A second user with Ann's email in upper case is rejected.
func TestForm_DuplicateEmailBlocksSubmit(t *testing.T) {
	cfg := testConfig(t)
	f, store := newTestForm(t, storage.NewMemoryKV(), allFeatures)
	if _, err := store.Create(context.Background(), annProfile()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := store.Users()

	second := annProfile()
	second.Name = "Ann Other"
	second.Email = "ANN@X.COM"

	f.OpenForCreate()
	fill(t, f, second)
	ok, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ok {
		t.Fatal("Submit succeeded with a duplicate email")
	}

	want := ErrorMap{FieldEmail: cfg.Messages.DuplicateEmail}
	if !reflect.DeepEqual(f.Errors(), want) {
		t.Errorf("errors = %v, want %v", f.Errors(), want)
	}
	if !f.IsOpen() {
		t.Error("form closed after failed submit")
	}
	if !reflect.DeepEqual(store.Users(), before) {
		t.Errorf("store changed: %+v", store.Users())
	}
}

// Editing only the city keeps the id and the email check passes.
func TestForm_EditFlow(t *testing.T) {
	f, store := newTestForm(t, storage.NewMemoryKV(), allFeatures)
	ann, _ := store.Create(context.Background(), annProfile())

	if err := f.OpenForEdit(ann); err != nil {
		t.Fatalf("OpenForEdit: %v", err)
	}
	if f.Mode() != FormEdit || f.EditingID() != ann.ID {
		t.Fatalf("mode=%v editing=%q", f.Mode(), f.EditingID())
	}
	if f.Draft() != ann.Profile {
		t.Errorf("draft = %+v, want %+v", f.Draft(), ann.Profile)
	}
	if !reflect.DeepEqual(f.Cities(), refdata.NewStatic().CitiesOf("Karnataka")) {
		t.Errorf("cities = %v, want Karnataka cities", f.Cities())
	}

	if err := f.SetCity("Mysore"); err != nil {
		t.Fatalf("SetCity: %v", err)
	}
	ok, err := f.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v; errors %v", ok, err, f.Errors())
	}

	users := store.Users()
	if len(users) != 1 {
		t.Fatalf("store has %d users, want 1", len(users))
	}
	if users[0].ID != ann.ID || users[0].Address.City != "Mysore" {
		t.Errorf("stored user = %+v", users[0])
	}
}

func TestForm_EditDraftIsACopy(t *testing.T) {
	f, store := newTestForm(t, storage.NewMemoryKV(), allFeatures)
	ann, _ := store.Create(context.Background(), annProfile())

	f.OpenForEdit(ann)
	f.SetLine1("99 Other Rd")
	f.Cancel()

	got, _ := store.Get(ann.ID)
	if got.Address.Line1 != "1 Main St" {
		t.Errorf("cancelled edit leaked into store: %q", got.Address.Line1)
	}
	if f.IsOpen() || f.Draft() != (Profile{}) {
		t.Error("Cancel did not discard the draft")
	}
}

func TestForm_EditDisabled(t *testing.T) {
	f, store := newTestForm(t, storage.NewMemoryKV(), config.FeaturesConfig{DeletableUsers: true})
	ann, _ := store.Create(context.Background(), annProfile())

	if err := f.OpenForEdit(ann); !errors.Is(err, ErrEditDisabled) {
		t.Errorf("OpenForEdit err = %v, want ErrEditDisabled", err)
	}
	if f.IsOpen() {
		t.Error("form opened although editing is disabled")
	}
}

// Picking Delhi loads its cities and clears the chosen city.
func TestForm_SelectState(t *testing.T) {
	f, _ := newTestForm(t, storage.NewMemoryKV(), allFeatures)
	f.OpenForCreate()
	f.SelectState("Karnataka")
	f.SetCity("Bangalore")

	if err := f.SelectState("Delhi"); err != nil {
		t.Fatalf("SelectState: %v", err)
	}

	want := []string{"New Delhi", "North Delhi", "South Delhi", "East Delhi", "West Delhi"}
	if !reflect.DeepEqual(f.Cities(), want) {
		t.Errorf("cities = %v, want %v", f.Cities(), want)
	}
	if f.Draft().Address.City != "" {
		t.Errorf("city = %q, want cleared", f.Draft().Address.City)
	}
	if f.Draft().Address.State != "Delhi" {
		t.Errorf("state = %q, want Delhi", f.Draft().Address.State)
	}
}

func TestForm_InputClearsFieldError(t *testing.T) {
	f, _ := newTestForm(t, storage.NewMemoryKV(), allFeatures)
	f.OpenForCreate()

	if ok, _ := f.Submit(context.Background()); ok {
		t.Fatal("empty form submitted")
	}
	if f.Errors().Get(FieldName) == "" || f.Errors().Get(FieldState) == "" {
		t.Fatalf("expected name and state errors, got %v", f.Errors())
	}

	f.SetName("A")
	f.SelectState("Kerala")

	errs := f.Errors()
	if errs.Get(FieldName) != "" {
		t.Errorf("name error not cleared: %q", errs.Get(FieldName))
	}
	if errs.Get(FieldState) != "" {
		t.Errorf("state error not cleared: %q", errs.Get(FieldState))
	}
	if errs.Get(FieldEmail) == "" {
		t.Error("unrelated email error was cleared")
	}
}

func TestForm_SetPinSanitizes(t *testing.T) {
	f, _ := newTestForm(t, storage.NewMemoryKV(), allFeatures)
	f.OpenForCreate()

	f.SetPin("56a0-0012345")
	if got := f.Draft().Address.Pin; got != "560001" {
		t.Errorf("pin = %q, want %q", got, "560001")
	}
}

func TestSanitizePin(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"560001", 6, "560001"},
		{"5600012", 6, "560001"},
		{" 56 00 01 ", 6, "560001"},
		{"abc", 6, ""},
		{"١٢٣", 6, ""}, // non-ASCII digits are dropped
		{"123456789", 0, "123456789"},
	}

	for _, tt := range tests {
		if got := SanitizePin(tt.in, tt.max); got != tt.want {
			t.Errorf("SanitizePin(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestForm_StoreFailureKeepsFormOpen(t *testing.T) {
	kv := &flakyKV{MemoryKV: storage.NewMemoryKV()}
	f, store := newTestForm(t, kv, allFeatures)
	kv.failing = true

	f.OpenForCreate()
	fill(t, f, annProfile())
	ok, err := f.Submit(context.Background())

	if ok || !errors.Is(err, ErrStorage) {
		t.Fatalf("Submit = %v, %v; want false, ErrStorage", ok, err)
	}
	if !f.IsOpen() || f.Draft() != annProfile() {
		t.Error("draft lost after store failure")
	}
	if store.Len() != 0 {
		t.Errorf("store has %d users, want 0", store.Len())
	}
}

func TestFormMode_String(t *testing.T) {
	if FormClosed.String() != "closed" || FormCreate.String() != "create" || FormEdit.String() != "edit" {
		t.Error("unexpected FormMode strings")
	}
}
