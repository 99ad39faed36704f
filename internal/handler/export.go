package handler

import (
	"net/http"
	"strconv"
)

// Export implements GET /api/export.
// Responses: 200 with the zip attachment, 204 when the history is empty
// (no file is produced), 409 while an export is already in flight, 500 with
// a generic message when bundle assembly fails.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.sessions.Export(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if bundle.Empty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+bundle.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(bundle.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(bundle.Data) //nolint:errcheck // nothing useful to do on a failed response write
}
