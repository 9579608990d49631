package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/userdir/internal/core"
	"github.com/JonMunkholm/userdir/internal/logging"
	"github.com/JonMunkholm/userdir/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the page. A pending alert is shown once.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := s.pageData()
	s.alert = nil
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Page(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// pageData snapshots the session for rendering. Callers must hold s.mu.
func (s *Server) pageData() templates.PageData {
	data := templates.PageData{
		Text:      s.cfg.Text,
		Hydrated:  s.store.IsHydrated(),
		Rows:      s.table.Rows(),
		CanEdit:   s.table.CanEdit(),
		CanDelete: s.table.CanDelete(),
		Alert:     s.alert,
	}

	if s.form.IsOpen() {
		data.Form = &templates.FormData{
			Editing:      s.form.Mode() == core.FormEdit,
			Draft:        s.form.Draft(),
			Errors:       s.form.Errors(),
			States:       s.form.States(),
			Cities:       s.form.Cities(),
			PinMaxLength: s.cfg.Validation.PinMaxLength,
		}
	}

	if u, ok := s.table.PendingDelete(); ok {
		data.Pending = &u
	}
	return data
}

// --- Form modal ---

func (s *Server) handleFormNew(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form.OpenForCreate()
	redirectHome(w, r)
}

func (s *Server) handleFormEdit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, r, core.ErrUserNotFound)
		return
	}
	if err := s.form.OpenForEdit(user); err != nil {
		s.respondError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// handleFormState applies what was typed so far and refreshes the city list.
func (s *Server) handleFormState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyFormInput(r); err != nil {
		s.respondError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyFormInput(r); err != nil {
		s.respondError(w, r, err)
		return
	}

	saved, err := s.form.Submit(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !saved {
		logging.FromContext(r.Context()).Debug("form has errors", "fields", len(s.form.Errors()))
	}
	redirectHome(w, r)
}

func (s *Server) handleFormCancel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form.Cancel()
	redirectHome(w, r)
}

// applyFormInput feeds posted fields through the form's input functions.
// Only values that differ from the draft are applied, so errors on untouched
// fields stay visible. State is applied before city. When the state changes,
// the posted city belongs to the old state's list and is dropped.
func (s *Server) applyFormInput(r *http.Request) error {
	if !s.form.IsOpen() {
		return core.ErrFormClosed
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrBadRequest, err)
	}

	d := s.form.Draft()
	inputs := []struct {
		field   string
		current string
		set     func(string) error
	}{
		{core.FieldName, d.Name, s.form.SetName},
		{core.FieldEmail, d.Email, s.form.SetEmail},
		{core.FieldLinkedinURL, d.LinkedinURL, s.form.SetLinkedinURL},
		{core.FieldGender, string(d.Gender), s.form.SetGender},
		{core.FieldLine1, d.Address.Line1, s.form.SetLine1},
		{core.FieldLine2, d.Address.Line2, s.form.SetLine2},
		{core.FieldState, d.Address.State, s.form.SelectState},
		{core.FieldCity, d.Address.City, s.form.SetCity},
		{core.FieldPin, d.Address.Pin, s.form.SetPin},
	}

	stateChanged := false
	for _, in := range inputs {
		if in.field == core.FieldCity && stateChanged {
			continue
		}
		values, ok := r.PostForm[in.field]
		if !ok || len(values) == 0 || values[0] == in.current {
			continue
		}
		if err := in.set(values[0]); err != nil {
			return err
		}
		if in.field == core.FieldState {
			stateChanged = true
		}
	}
	return nil
}

// --- Table rows ---

func (s *Server) handleRowToggle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.store.Get(id); !ok {
		s.respondError(w, r, core.ErrUserNotFound)
		return
	}
	s.table.ToggleExpand(id)
	redirectHome(w, r)
}

func (s *Server) handleRowDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, r, core.ErrUserNotFound)
		return
	}
	if err := s.table.RequestDelete(user); err != nil {
		s.respondError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.ConfirmDelete(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleDeleteCancel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table.CancelDelete()
	redirectHome(w, r)
}
