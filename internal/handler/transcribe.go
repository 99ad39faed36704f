package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// transcribeUpgrader is the shared upgrader for transcription connections.
var transcribeUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin policy for the API is handled at the HTTP layer;
		// the socket carries only the caller's own audio and transcript.
		return true
	},
}

// transcribeMessage is the server-to-client message shape on the socket.
type transcribeMessage struct {
	Type string `json:"type"` // "delta", "final", or "error"
	Text string `json:"text,omitempty"`
}

// stopCommand is the text frame a client sends to end the recording while
// keeping the socket open for the final transcript.
const stopCommand = "stop"

// Transcribe implements GET /api/transcribe.
//
// Client to server: binary frames carry PCM audio; the text frame "stop" (or
// closing the socket) ends the recording. Server to client: {"type":"delta"}
// messages stream incremental transcript text; a single {"type":"final"}
// message with the accumulated transcript is sent before the socket closes.
// The gateway session is released on every exit path.
func (s *Server) Transcribe(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.StartRecording(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := transcribeUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		s.sessions.StopRecording(r.Context()) //nolint:errcheck // releasing the session is all that matters here
		return
	}
	defer conn.Close()

	// Writer goroutine: owns all socket writes until Deltas closes. It keeps
	// draining even if a write fails so the gateway's receive loop never
	// blocks on a dead client.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for delta := range session.Deltas() {
			if err := conn.WriteJSON(transcribeMessage{Type: "delta", Text: delta}); err != nil {
				s.logger.Debug("transcribe: delta write failed", "error", err)
			}
		}
	}()

read:
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			// Client closed or the connection dropped.
			break
		}
		switch msgType {
		case websocket.BinaryMessage:
			if err := session.Send(r.Context(), data); err != nil {
				s.logger.Warn("transcribe: audio relay failed", "error", err)
				break read
			}
		case websocket.TextMessage:
			if string(data) == stopCommand {
				break read
			}
		}
	}

	// The request context may already be canceled when the client closed the
	// socket; stopping must still run so the gateway session is released.
	final, err := s.sessions.StopRecording(context.WithoutCancel(r.Context()))

	// Deltas closes once the session is stopped; wait so the final message
	// is the last write on the socket.
	<-writerDone

	if err != nil {
		conn.WriteJSON(transcribeMessage{Type: "error"}) //nolint:errcheck // client may be gone
		return
	}
	conn.WriteJSON(transcribeMessage{Type: "final", Text: final}) //nolint:errcheck // client may be gone
}
