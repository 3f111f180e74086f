package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// leaderboardHub pushes a fresh leaderboard snapshot to every connected
// display whenever a score lands.
type leaderboardHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newLeaderboardHub() *leaderboardHub {
	return &leaderboardHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *leaderboardHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *leaderboardHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *leaderboardHub) Broadcast(payload any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			h.Remove(conn)
		}
	}
}

func (s *Server) handleLeaderboardSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	s.hub.Add(conn)
	if entries, err := s.leaderboard(); err == nil {
		_ = conn.WriteJSON(map[string]any{"type": "leaderboard", "entries": entries})
	}
	go func() {
		defer s.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcastLeaderboard() {
	entries, err := s.leaderboard()
	if err != nil {
		log.Warn().Err(err).Msg("leaderboard refresh failed")
		return
	}
	s.hub.Broadcast(map[string]any{"type": "leaderboard", "entries": entries})
}
