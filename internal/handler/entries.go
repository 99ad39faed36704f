package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListEntries implements GET /api/entries.
// Returns the full history, newest first. Always returns a JSON array,
// never null, so clients can safely iterate.
func (s *Server) ListEntries(w http.ResponseWriter, _ *http.Request) {
	entries := s.sessions.Entries()
	writeJSON(w, http.StatusOK, entries)
}

// GetCurrent implements GET /api/entries/current.
// Returns the currently displayed entry, or 404 when none is selected.
func (s *Server) GetCurrent(w http.ResponseWriter, _ *http.Request) {
	entry, ok := s.sessions.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no current entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// SelectEntry implements POST /api/entries/{id}/select.
// Makes a history entry the current one (replaying an old doodle).
func (s *Server) SelectEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid entry id")
		return
	}

	entry, err := s.sessions.Select(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry implements DELETE /api/entries/{id}.
// Deletion is idempotent: removing an absent id is a silent no-op, so the
// response is 204 either way. If the deleted entry was the current entry,
// the current pointer is cleared as part of the delete contract.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid entry id")
		return
	}

	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
