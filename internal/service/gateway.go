package service

import (
	"context"

	"github.com/pkordes/doodle-diary/internal/domain"
)

// Gateway is the external generative-AI collaborator. The session controller
// receives it at construction, so tests substitute a fake and the rest of the
// app never touches a concrete client.
type Gateway interface {
	// GeneratePrompt turns a journal transcript plus style preferences into
	// a short visual prompt for the image stage.
	GeneratePrompt(ctx context.Context, transcript string, style domain.DoodleStyle) (string, error)

	// GenerateImage renders the visual prompt into a PNG.
	GenerateImage(ctx context.Context, prompt string) (domain.ImageData, error)

	// OpenTranscription starts a realtime transcription session. The caller
	// pushes audio frames in and consumes transcript deltas until it closes
	// the session.
	OpenTranscription(ctx context.Context) (TranscriptionSession, error)
}

// TranscriptionSession is a bidirectional channel over a live transcription
// connection: a producer pushes audio frames with Send while a consumer
// drains Deltas. Close tears down the underlying connection, and with it the
// upstream audio capture resource, then returns the final accumulated
// transcript. Deltas is closed once the session ends.
type TranscriptionSession interface {
	// Send pushes one audio frame upstream.
	Send(ctx context.Context, frame []byte) error

	// Deltas yields incremental transcript text as it is recognized.
	// The consumer must keep draining the channel until it closes, or a
	// slow consumer can stall the session's receive loop and block Close.
	Deltas() <-chan string

	// Close releases the connection and returns the final transcript.
	// It is safe to call once; the final transcript is the concatenation
	// of every delta produced during the session.
	Close(ctx context.Context) (string, error)
}
