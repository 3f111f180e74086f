package server

import (
	"net/http"

	"puzzle-week/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleLeaderboardView(w http.ResponseWriter, r *http.Request) {
	entries, err := s.leaderboard()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	rows := make([]web.LeaderboardRow, len(entries))
	for i, entry := range entries {
		rows[i] = web.LeaderboardRow{Name: entry.Name, Total: entry.Total, Games: entry.Games}
	}
	templ.Handler(web.Leaderboard(rows)).ServeHTTP(w, r)
}
