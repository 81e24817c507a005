package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"novel/internal/game"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsMaxMessage = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

type wsRequest struct {
	Type string `json:"type"`
}

type wsResponse struct {
	Type    string     `json:"type"`
	Beat    *game.Beat `json:"beat,omitempty"`
	Message string     `json:"message,omitempty"`
}

// GET /ws
//
// The client sends {"type":"advance"} to step the story or {"type":"last"}
// to receive the most recent beat again. Every reply is a JSON message of
// type "beat" or "error".
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	p, id, ok := s.currentPlay(r.Context(), r)
	if !ok {
		http.Error(w, "no game in progress", http.StatusUnauthorized)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger().Printf("session %s: websocket upgrade: %v", id, err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger().Printf("session %s: websocket read: %v", id, err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		var resp wsResponse
		switch req.Type {
		case "advance":
			p.mu.Lock()
			beat := s.interpreter(p).Advance()
			p.LastBeat = beat
			p.mu.Unlock()
			resp = wsResponse{Type: "beat", Beat: &beat}
		case "last":
			p.mu.Lock()
			beat := p.LastBeat
			p.mu.Unlock()
			resp = wsResponse{Type: "beat", Beat: &beat}
		default:
			resp = wsResponse{Type: "error", Message: "unknown message type"}
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger().Printf("session %s: websocket write: %v", id, err)
			return
		}
	}
}
