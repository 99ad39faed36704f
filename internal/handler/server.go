// Package handler implements the HTTP surface of the Doodle Diary.
// All handlers are methods on Server; methods are split into area-specific
// files (entries.go, generate.go, export.go, transcribe.go) but share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/doodle-diary/internal/domain"
	"github.com/pkordes/doodle-diary/internal/service"
	"github.com/pkordes/doodle-diary/spec"
)

// SessionServicer defines the session-controller operations the handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the service layer or the
// gateway.
type SessionServicer interface {
	Generate(ctx context.Context, transcript string, style domain.DoodleStyle) (domain.DoodleEntry, error)
	Entries() []domain.DoodleEntry
	Current() (domain.DoodleEntry, bool)
	Select(id uuid.UUID) (domain.DoodleEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context) (domain.Bundle, error)
	StartRecording(ctx context.Context) (service.TranscriptionSession, error)
	StopRecording(ctx context.Context) (string, error)
	State() service.State
}

// Server holds the handler dependencies for all endpoints.
type Server struct {
	sessions SessionServicer
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(sessions SessionServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{sessions: sessions, logger: logger}
}

// Routes returns the router for the full API surface.
// Cross-cutting middleware (request ID, logging, CORS, body limits) is
// applied by main around this router, not here.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Get("/openapi.yaml", s.OpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.GetState)
		r.Get("/entries", s.ListEntries)
		r.Get("/entries/current", s.GetCurrent)
		r.Post("/entries/{id}/select", s.SelectEntry)
		r.Delete("/entries/{id}", s.DeleteEntry)
		r.Post("/generate", s.Generate)
		r.Get("/export", s.Export)
		r.Get("/transcribe", s.Transcribe)
	})

	return r
}

// OpenAPI serves the embedded API contract.
func (s *Server) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(spec.OpenAPI) //nolint:errcheck // nothing useful to do on a failed response write
}

// Health implements GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState implements GET /api/state: the three busy flags the UI uses to
// disable in-flight actions.
func (s *Server) GetState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.State())
}
