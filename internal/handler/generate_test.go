package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// postGenerate performs a POST /api/generate with the given JSON body.
func postGenerate(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestGenerate_OK verifies the happy path returns 201 with the new entry and
// forwards transcript and style to the service.
func TestGenerate_OK(t *testing.T) {
	var gotTranscript string
	var gotStyle domain.DoodleStyle
	entry := sampleEntry("Had a picnic")

	h := newTestHandler(&mockSessionServicer{
		generate: func(_ context.Context, transcript string, style domain.DoodleStyle) (domain.DoodleEntry, error) {
			gotTranscript = transcript
			gotStyle = style
			return entry, nil
		},
	})

	rec := postGenerate(h, `{
		"transcript": "Had a picnic",
		"style": {"thickness": "Bold", "color": "Red", "artStyle": "Crayon"}
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, entry.ID, decodeEntry(t, rec).ID)
	assert.Equal(t, "Had a picnic", gotTranscript)
	assert.Equal(t, domain.DoodleStyle{
		Thickness: domain.ThicknessBold,
		Color:     "Red",
		ArtStyle:  domain.ArtStyleCrayon,
	}, gotStyle)
}

// TestGenerate_OmittedStyleFallsBackToDefaults verifies unset style fields
// are filled from the defaults before reaching the service.
func TestGenerate_OmittedStyleFallsBackToDefaults(t *testing.T) {
	var gotStyle domain.DoodleStyle
	h := newTestHandler(&mockSessionServicer{
		generate: func(_ context.Context, _ string, style domain.DoodleStyle) (domain.DoodleEntry, error) {
			gotStyle = style
			return sampleEntry("x"), nil
		},
	})

	rec := postGenerate(h, `{"transcript": "quiet sunday"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.DefaultStyle(), gotStyle)
}

// TestGenerate_EmptyTranscript verifies the validation error maps to 422
// with the unwrapped human-readable message.
func TestGenerate_EmptyTranscript(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{
		generate: func(context.Context, string, domain.DoodleStyle) (domain.DoodleEntry, error) {
			return domain.DoodleEntry{}, fmt.Errorf("%w: transcript is required", domain.ErrValidation)
		},
	})

	rec := postGenerate(h, `{"transcript": "   "}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "transcript is required")
}

// TestGenerate_Busy verifies an in-flight generation maps to 409.
func TestGenerate_Busy(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{
		generate: func(context.Context, string, domain.DoodleStyle) (domain.DoodleEntry, error) {
			return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Generate: %w", domain.ErrBusy)
		},
	})

	rec := postGenerate(h, `{"transcript": "too eager"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// TestGenerate_RemoteFailureIsGeneric502 verifies a failed generation stage
// maps to 502 with the fixed generic message; no provider detail leaks.
func TestGenerate_RemoteFailureIsGeneric502(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{
		generate: func(context.Context, string, domain.DoodleStyle) (domain.DoodleEntry, error) {
			return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Generate: %w", domain.ErrGenerationFailed)
		},
	})

	rec := postGenerate(h, `{"transcript": "rainy tuesday"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Couldn't generate your doodle")
	assert.NotContains(t, rec.Body.String(), "quota")
}

// TestGenerate_MalformedBody verifies undecodable JSON is rejected with 400.
func TestGenerate_MalformedBody(t *testing.T) {
	h := newTestHandler(&mockSessionServicer{})

	rec := postGenerate(h, `{"transcript": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
