package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// dateLayout is the human-readable creation timestamp written into each
// entry, e.g. "August 23, 2026". It is fixed at creation and stored verbatim.
const dateLayout = "January 2, 2006"

// State reports which session operations are currently in flight. The UI
// uses it to disable the corresponding actions; the service enforces the
// same gates server-side.
type State struct {
	Recording  bool `json:"recording"`
	Generating bool `json:"generating"`
	Exporting  bool `json:"exporting"`
}

// SessionService is the session controller: the single contract the UI talks
// to. It orchestrates the request lifecycle (record, generate, export,
// browse, delete) over three independent busy flags, each of which admits at
// most one in-flight operation.
//
// It also owns the "current entry" pointer: an optional reference to the
// entry being displayed. Delete clears the pointer when it removes the entry
// it references; that is part of the delete contract, not incidental state.
type SessionService struct {
	gateway  Gateway
	history  *HistoryStore
	exporter *ExportService
	logger   *slog.Logger

	mu         sync.Mutex
	generating bool
	exporting  bool
	recording  TranscriptionSession
	current    *domain.DoodleEntry
	now        func() time.Time
}

// NewSessionService constructs the session controller with its collaborators.
// The gateway is injected so tests can substitute a fake.
func NewSessionService(gateway Gateway, history *HistoryStore, exporter *ExportService, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		gateway:  gateway,
		history:  history,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate runs the two-stage generation chain: transcript plus style to
// visual prompt, then visual prompt to image. Both stages must succeed for an entry
// to be created; failure at either stage discards the attempt and returns
// domain.ErrGenerationFailed (the cause is logged, not surfaced).
//
// Gates: an empty or whitespace-only transcript returns domain.ErrValidation
// before any remote call; a generation already in flight returns
// domain.ErrBusy. On success the new entry is prepended to the history and
// becomes the current entry.
func (s *SessionService) Generate(ctx context.Context, transcript string, style domain.DoodleStyle) (domain.DoodleEntry, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return domain.DoodleEntry{}, fmt.Errorf("%w: transcript is required", domain.ErrValidation)
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Generate: %w", domain.ErrBusy)
	}
	s.generating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	prompt, err := s.gateway.GeneratePrompt(ctx, transcript, style)
	if err != nil {
		s.logger.Error("generation: prompt stage failed", "error", err)
		return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Generate: %w", domain.ErrGenerationFailed)
	}

	image, err := s.gateway.GenerateImage(ctx, prompt)
	if err != nil {
		s.logger.Error("generation: image stage failed", "error", err)
		return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Generate: %w", domain.ErrGenerationFailed)
	}

	entry := domain.DoodleEntry{
		ID:         uuid.New(),
		Date:       s.now().Format(dateLayout),
		Transcript: transcript,
		ImageURL:   domain.EncodePNGDataURI(image.Data),
		Prompt:     prompt,
		Style:      style,
	}

	if err := s.history.Add(ctx, entry); err != nil {
		return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Generate: %w", err)
	}

	s.mu.Lock()
	s.current = &entry
	s.mu.Unlock()

	s.logger.Info("generation: entry created", "id", entry.ID)
	return entry, nil
}

// Entries returns the history snapshot, newest first.
func (s *SessionService) Entries() []domain.DoodleEntry {
	return s.history.Entries()
}

// Current returns the currently displayed entry, if any.
func (s *SessionService) Current() (domain.DoodleEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.DoodleEntry{}, false
	}
	return *s.current, true
}

// Select makes the history entry with the given id the current entry
// (replaying an old doodle). Returns domain.ErrNotFound if it does not exist.
func (s *SessionService) Select(id uuid.UUID) (domain.DoodleEntry, error) {
	entry, err := s.history.Get(id)
	if err != nil {
		return domain.DoodleEntry{}, fmt.Errorf("service.SessionService.Select: %w", err)
	}

	s.mu.Lock()
	s.current = &entry
	s.mu.Unlock()
	return entry, nil
}

// Delete removes the entry with the given id from the history. Deleting an
// absent id is a silent no-op. If the removed entry is the current entry,
// the current pointer is cleared.
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.history.Remove(ctx, id); err != nil {
		return fmt.Errorf("service.SessionService.Delete: %w", err)
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()
	return nil
}

// Export bundles the full history for download. At most one export runs at a
// time; a second invocation while one is in flight returns domain.ErrBusy.
// An empty history yields a zero bundle and no error. The history is never
// mutated by an export.
func (s *SessionService) Export(ctx context.Context) (domain.Bundle, error) {
	s.mu.Lock()
	if s.exporting {
		s.mu.Unlock()
		return domain.Bundle{}, fmt.Errorf("service.SessionService.Export: %w", domain.ErrBusy)
	}
	s.exporting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	bundle, err := s.exporter.Export(ctx, s.history.Entries())
	if err != nil {
		s.logger.Error("export: bundle assembly failed", "error", err)
		return domain.Bundle{}, fmt.Errorf("service.SessionService.Export: %w", domain.ErrExportFailed)
	}
	return bundle, nil
}

// StartRecording opens a realtime transcription session through the gateway.
// Only one recording may be active; a second start returns domain.ErrBusy.
// A gateway or microphone failure returns domain.ErrRecordingFailed and the
// recording state stays idle.
func (s *SessionService) StartRecording(ctx context.Context) (TranscriptionSession, error) {
	s.mu.Lock()
	if s.recording != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("service.SessionService.StartRecording: %w", domain.ErrBusy)
	}
	s.mu.Unlock()

	session, err := s.gateway.OpenTranscription(ctx)
	if err != nil {
		s.logger.Error("recording: failed to open transcription session", "error", err)
		return nil, fmt.Errorf("service.SessionService.StartRecording: %w", domain.ErrRecordingFailed)
	}

	s.mu.Lock()
	if s.recording != nil {
		// Lost the race to another start; release the session we opened.
		s.mu.Unlock()
		session.Close(ctx) //nolint:errcheck // best-effort release on the losing path
		return nil, fmt.Errorf("service.SessionService.StartRecording: %w", domain.ErrBusy)
	}
	s.recording = session
	s.mu.Unlock()

	s.logger.Info("recording: session started")
	return session, nil
}

// StopRecording closes the active transcription session and returns the
// final accumulated transcript. The underlying connection and audio capture
// are always released, even when Close reports an error. Stopping with no
// active recording returns domain.ErrValidation.
func (s *SessionService) StopRecording(ctx context.Context) (string, error) {
	s.mu.Lock()
	session := s.recording
	s.recording = nil
	s.mu.Unlock()

	if session == nil {
		return "", fmt.Errorf("%w: no recording in progress", domain.ErrValidation)
	}

	final, err := session.Close(ctx)
	if err != nil {
		s.logger.Error("recording: session close failed", "error", err)
		return "", fmt.Errorf("service.SessionService.StopRecording: %w", domain.ErrRecordingFailed)
	}

	s.logger.Info("recording: session stopped", "transcript_len", len(final))
	return final, nil
}

// State reports the three busy flags.
func (s *SessionService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Recording:  s.recording != nil,
		Generating: s.generating,
		Exporting:  s.exporting,
	}
}
