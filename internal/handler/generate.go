package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// generateRequest is the request body for POST /api/generate.
// Style fields left empty fall back to the session defaults; the color is
// free-form and deliberately not validated (unknown names render as black).
type generateRequest struct {
	Transcript string             `json:"transcript"`
	Style      domain.DoodleStyle `json:"style"`
}

// Generate implements POST /api/generate.
// Responses: 201 with the new entry, 422 for an empty transcript, 409 while
// a generation is already in flight, 502 when either remote stage fails.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	entry, err := s.sessions.Generate(r.Context(), req.Transcript, withStyleDefaults(req.Style))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// withStyleDefaults fills any unset style field from the default style.
// The color string itself is never validated, only defaulted when empty.
func withStyleDefaults(style domain.DoodleStyle) domain.DoodleStyle {
	def := domain.DefaultStyle()
	if style.Thickness == "" {
		style.Thickness = def.Thickness
	}
	if style.Color == "" {
		style.Color = def.Color
	}
	if style.ArtStyle == "" {
		style.ArtStyle = def.ArtStyle
	}
	return style
}
