package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and request id (at warn
// when it maps to a coded message, at error otherwise), then
// mapped through core.MapError. Page actions keep the coded message as the
// alert shown on the next render and redirect back to the page; API calls
// get a JSON body.

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/userdir/internal/core"
	"github.com/JonMunkholm/userdir/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// ValidationResponse is returned with 422 when a record fails validation.
type ValidationResponse struct {
	Error  string        `json:"error"`
	Fields core.ErrorMap `json:"fields"`
}

// statusFor picks the HTTP status for an error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrEditDisabled), errors.Is(err, core.ErrDeleteDisabled):
		return http.StatusForbidden
	case errors.Is(err, core.ErrBadRequest), errors.Is(err, core.ErrFormClosed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError handles error responses with user-friendly messages.
// Callers must hold s.mu for page requests.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := core.MapError(err)
	status := statusFor(err)
	userFacing := core.IsUserFacing(err)

	// Coded errors are expected outcomes; only unmapped ones are failures.
	level := slog.LevelError
	if userFacing {
		level = slog.LevelWarn
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"user_facing", userFacing,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}

	s.alert = &userMsg
	redirectHome(w, r)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// redirectHome finishes a page action (post/redirect/get).
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}

	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
