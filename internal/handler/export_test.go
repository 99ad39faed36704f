package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// getExport performs a GET /api/export.
func getExport(h http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestExport_OK verifies the bundle is delivered as a zip attachment with
// the dated filename.
func TestExport_OK(t *testing.T) {
	bundle := domain.Bundle{
		Filename: "doodle-diary-export-2026-08-23.zip",
		Data:     []byte("PK\x03\x04fake zip bytes"),
	}
	h := newTestHandler(&mockSessionServicer{
		export: func(context.Context) (domain.Bundle, error) { return bundle, nil },
	})

	rec := getExport(h)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="doodle-diary-export-2026-08-23.zip"`,
		rec.Header().Get("Content-Disposition"))
	assert.Equal(t, bundle.Data, rec.Body.Bytes())
}

// TestExport_EmptyHistory verifies an empty history yields 204 and no file.
func TestExport_EmptyHistory(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{
		export: func(context.Context) (domain.Bundle, error) { return domain.Bundle{}, nil },
	})

	rec := getExport(h)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

// TestExport_Busy verifies a second export while one is in flight maps to 409.
func TestExport_Busy(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{
		export: func(context.Context) (domain.Bundle, error) {
			return domain.Bundle{}, fmt.Errorf("service.SessionService.Export: %w", domain.ErrBusy)
		},
	})

	rec := getExport(h)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// TestExport_AssemblyFailureIsGeneric500 verifies a failed assembly delivers
// no partial file, only the fixed generic message.
func TestExport_AssemblyFailureIsGeneric500(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{
		export: func(context.Context) (domain.Bundle, error) {
			return domain.Bundle{}, fmt.Errorf("service.SessionService.Export: %w", domain.ErrExportFailed)
		},
	})

	rec := getExport(h)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Couldn't export your diary")
	assert.NotEqual(t, "application/zip", rec.Header().Get("Content-Type"))
}
