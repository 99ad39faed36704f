package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// Fixed user-facing messages. Remote failures are deliberately generic; the
// detailed cause is only ever logged.
const (
	msgGenerationFailed = "Couldn't generate your doodle. Please try again."
	msgExportFailed     = "Couldn't export your diary. Please try again."
	msgRecordingFailed  = "Couldn't start the recording session. Please check microphone access and try again."
)

// errorResponse is the JSON error envelope used by every endpoint.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // nothing useful to do on a failed response write
}

// writeError writes the error envelope with the given status, code, and message.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error to its HTTP response.
// Sentinel mapping: ErrValidation to 422, ErrBusy to 409, ErrNotFound to 404,
// ErrGenerationFailed and ErrRecordingFailed to 502, ErrExportFailed to 500.
// Anything else is a 500 with a neutral message.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrBusy):
		writeError(w, http.StatusConflict, "busy", "That action is already in progress.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "entry not found")
	case errors.Is(err, domain.ErrGenerationFailed):
		writeError(w, http.StatusBadGateway, "generation_failed", msgGenerationFailed)
	case errors.Is(err, domain.ErrRecordingFailed):
		writeError(w, http.StatusBadGateway, "recording_failed", msgRecordingFailed)
	case errors.Is(err, domain.ErrExportFailed):
		writeError(w, http.StatusInternalServerError, "export_failed", msgExportFailed)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation: from
// "service.SessionService.Generate: validation error: transcript is required"
// it returns "transcript is required".
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); idx >= 0 {
		return msg[idx+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
