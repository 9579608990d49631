// Package web provides the HTTP server and handlers for the user directory UI.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/core"
	"github.com/JonMunkholm/userdir/internal/refdata"
	custommw "github.com/JonMunkholm/userdir/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the user directory.
//
// The page is driven by one operator session: the form session, table state
// and pending alert are shared by every request. mu serializes UI events so
// each one runs to completion before the next starts.
type Server struct {
	cfg       *config.Config
	store     *core.Store
	validator *core.Validator
	ref       refdata.Provider
	router    *chi.Mux
	server    *http.Server

	mu    sync.Mutex
	form  *core.FormSession
	table *core.Table
	alert *core.UserMessage
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, store *core.Store, validator *core.Validator, ref refdata.Provider) *Server {
	s := &Server{
		cfg:       cfg,
		store:     store,
		validator: validator,
		ref:       ref,
		router:    chi.NewRouter(),
		form:      core.NewFormSession(store, validator, ref, cfg.Features, cfg.Validation.PinMaxLength),
		table:     core.NewTable(store, cfg.Features),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(custommw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Page
	s.router.Group(func(r chi.Router) {
		r.Use(withOrigin(core.OriginPage))

		r.Get("/", s.handleIndex)

		// Form modal
		r.Route("/form", func(r chi.Router) {
			r.Post("/new", s.handleFormNew)
			r.Post("/edit/{id}", s.handleFormEdit)
			r.Post("/state", s.handleFormState)
			r.Post("/submit", s.handleFormSubmit)
			r.Post("/cancel", s.handleFormCancel)
		})

		// Table rows
		r.Post("/rows/{id}/toggle", s.handleRowToggle)
		r.Post("/rows/{id}/delete", s.handleRowDelete)
		r.Post("/delete/confirm", s.handleDeleteConfirm)
		r.Post("/delete/cancel", s.handleDeleteCancel)
	})

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Use(withOrigin(core.OriginAPI))

		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)
		r.Put("/users/{id}", s.handleUpdateUser)
		r.Delete("/users/{id}", s.handleDeleteUser)

		r.Get("/states", s.handleListStates)
		r.Get("/states/{state}/cities", s.handleListCities)
	})

	s.router.Get("/healthz", s.handleHealth)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and detaches the table from the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.table.Close()
	s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Inline styles for the page, inline handler for the state select
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'")
			}

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// withOrigin tags the request context so store logs show where a change
// came from.
func withOrigin(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(core.ContextWithOrigin(r.Context(), origin)))
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
