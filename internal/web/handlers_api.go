package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/userdir/internal/core"
	"github.com/JonMunkholm/userdir/internal/logging"
	"github.com/go-chi/chi/v5"
)

// MaxBodySize bounds JSON request bodies.
const MaxBodySize = 64 << 10

// UsersResponse is the body of GET /api/users.
type UsersResponse struct {
	Hydrated bool        `json:"hydrated"`
	Users    []core.User `json:"users"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Hydrated bool   `json:"hydrated"`
	Users    int    `json:"users"`
}

func decodeProfile(w http.ResponseWriter, r *http.Request) (core.Profile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var p core.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return core.Profile{}, fmt.Errorf("%w: invalid request body: %w", core.ErrBadRequest, err)
	}
	return p, nil
}

// writeValidation reports field errors with 422.
func writeValidation(w http.ResponseWriter, errs core.ErrorMap) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
		Error:  "validation failed",
		Fields: errs,
	})
}

// handleListUsers returns the user list in store order.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UsersResponse{
		Hydrated: s.store.IsHydrated(),
		Users:    s.store.Users(),
	})
}

// handleCreateUser validates and stores a new user.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProfile(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := s.validator.Validate(p, s.store.Users(), ""); !errs.Valid() {
		writeValidation(w, errs)
		return
	}

	user, err := s.store.Create(r.Context(), p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	logging.WithFields(r.Context(), "user_id", user.ID).Info("user created via api")
	writeJSON(w, http.StatusCreated, user)
}

// handleUpdateUser validates and replaces an existing user.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Features.EditableUsers {
		s.respondError(w, r, core.ErrEditDisabled)
		return
	}

	p, err := decodeProfile(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := s.store.Get(id); !ok {
		s.respondError(w, r, core.ErrUserNotFound)
		return
	}

	if errs := s.validator.Validate(p, s.store.Users(), id); !errs.Valid() {
		writeValidation(w, errs)
		return
	}

	user := core.User{ID: id, Profile: p}
	if err := s.store.Update(r.Context(), user); err != nil {
		s.respondError(w, r, err)
		return
	}
	logging.WithFields(r.Context(), "user_id", id).Info("user updated via api")
	writeJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes a user. Unknown ids succeed without change.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Features.DeletableUsers {
		s.respondError(w, r, core.ErrDeleteDisabled)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	logging.WithFields(r.Context(), "user_id", id).Info("user deleted via api")
	w.WriteHeader(http.StatusNoContent)
}

// handleListStates returns the states in display order.
func (s *Server) handleListStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ref.ListStates())
}

// handleListCities returns the cities of a state, empty for unknown states.
func (s *Server) handleListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ref.CitiesOf(chi.URLParam(r, "state")))
}

// handleHealth reports liveness and whether the store has loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Hydrated: s.store.IsHydrated(),
		Users:    s.store.Len(),
	})
}
