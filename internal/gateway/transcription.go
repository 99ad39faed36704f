package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/pkordes/doodle-diary/internal/service"
)

// pcmMIMEType is the audio format the browser capture pipeline produces:
// 16-bit little-endian PCM at 16 kHz, the format the Live API transcribes.
const pcmMIMEType = "audio/pcm;rate=16000"

// deltaBuffer sizes the transcript delta channel. Recognition output is
// bursty; a small buffer keeps the receive loop from stalling on a slow
// consumer without holding much text in flight.
const deltaBuffer = 32

// OpenTranscription connects a Live API session configured for input audio
// transcription and returns it as a service.TranscriptionSession.
func (g *Gemini) OpenTranscription(ctx context.Context) (service.TranscriptionSession, error) {
	session, err := g.client.Live.Connect(ctx, g.liveModel, &genai.LiveConnectConfig{
		ResponseModalities:      []genai.Modality{genai.ModalityText},
		InputAudioTranscription: &genai.AudioTranscriptionConfig{},
	})
	if err != nil {
		return nil, fmt.Errorf("gateway.Gemini.OpenTranscription: %w", err)
	}

	t := &liveTranscription{
		session: session,
		deltas:  make(chan string, deltaBuffer),
		done:    make(chan struct{}),
	}
	go t.receive(g.logger)
	return t, nil
}

// liveTranscription adapts a genai Live session to the explicit
// producer/consumer channel contract: Send pushes audio frames upstream,
// Deltas drains incremental transcript text, Close tears the connection down
// and hands back the accumulated transcript.
type liveTranscription struct {
	session *genai.Session
	deltas  chan string
	done    chan struct{}

	mu     sync.Mutex
	final  strings.Builder
	closed bool
}

// Send pushes one PCM audio frame into the live session.
func (t *liveTranscription) Send(_ context.Context, frame []byte) error {
	err := t.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Media: &genai.Blob{Data: frame, MIMEType: pcmMIMEType},
	})
	if err != nil {
		return fmt.Errorf("gateway.liveTranscription.Send: %w", err)
	}
	return nil
}

// Deltas yields incremental transcript text. The channel is closed when the
// session ends, whether by Close or by the upstream connection dropping.
func (t *liveTranscription) Deltas() <-chan string {
	return t.deltas
}

// Close shuts the live connection down and returns the final transcript.
// Closing the session is what releases the upstream capture resource, so it
// happens unconditionally; Close is idempotent.
func (t *liveTranscription) Close(_ context.Context) (string, error) {
	t.mu.Lock()
	alreadyClosed := t.closed
	t.closed = true
	t.mu.Unlock()

	var closeErr error
	if !alreadyClosed {
		closeErr = t.session.Close()
	}

	// Wait for the receive loop to drain so the final transcript is complete.
	<-t.done

	t.mu.Lock()
	final := t.final.String()
	t.mu.Unlock()

	if closeErr != nil {
		return final, fmt.Errorf("gateway.liveTranscription.Close: %w", closeErr)
	}
	return final, nil
}

// receive drains server messages until the session ends, accumulating input
// transcription text and forwarding each fragment as a delta.
func (t *liveTranscription) receive(logger *slog.Logger) {
	defer close(t.done)
	defer close(t.deltas)

	for {
		msg, err := t.session.Receive()
		if err != nil {
			// Receive fails once the session is closed (ours or upstream's);
			// only log when the close was not requested locally.
			t.mu.Lock()
			closed := t.closed
			t.mu.Unlock()
			if !closed {
				logger.Warn("transcription: live session ended", "error", err)
			}
			return
		}

		sc := msg.ServerContent
		if sc == nil || sc.InputTranscription == nil || sc.InputTranscription.Text == "" {
			continue
		}

		text := sc.InputTranscription.Text
		t.mu.Lock()
		t.final.WriteString(text)
		t.mu.Unlock()

		t.deltas <- text
	}
}
