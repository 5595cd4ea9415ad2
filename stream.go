package main

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

// maxStreamMessage bounds an incoming CullRequest frame; larger frames
// close the stream with CloseMessageTooBig.
const maxStreamMessage = 4 << 10

// StreamMessage answers one CullRequest on the cull stream.
type StreamMessage struct {
	VisibleResponse
	Frame uint64 `json:"frame"`
	Error string `json:"error,omitempty"`
}

// cullStreamHandler upgrades to a websocket on which the client sends one
// CullRequest per rendered frame and gets a StreamMessage back for each.
// Bad requests are answered with an error message and keep the stream open.
func (s *server) cullStreamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.log.Debug("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxStreamMessage)
	s.log.Debug("cull stream opened", "remote", r.RemoteAddr)

	var frame uint64
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("cull stream closed", "remote", r.RemoteAddr, "err", err)
			}
			return
		}

		frame++
		msg := StreamMessage{Frame: frame}
		var req CullRequest
		if err := json.Unmarshal(data, &req); err != nil {
			msg.Error = "invalid JSON: " + err.Error()
		} else if msg.VisibleResponse, err = s.cull(req); err != nil {
			msg.Error = err.Error()
		}

		if err := conn.WriteJSON(msg); err != nil {
			s.log.Warn("cull stream write", "remote", r.RemoteAddr, "err", err)
			return
		}
	}
}

// checkOrigin applies the CORS origins to websocket upgrades. Requests
// without an Origin header are not from a browser and always pass.
func (s *server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(s.cfg.CORS.AllowedOrigins, "*") || slices.Contains(s.cfg.CORS.AllowedOrigins, origin)
}
