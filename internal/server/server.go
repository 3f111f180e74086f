package server

import (
	"net/http"

	"puzzle-week/internal/config"
	"puzzle-week/internal/content"
	"puzzle-week/internal/ledger"

	"gorm.io/gorm"
)

type Server struct {
	content content.Store
	ledger  ledger.Ledger
	players PlayerDirectory
	clock   ClockSource
	db      *gorm.DB
	cfg     config.Config
	hub     *leaderboardHub
}

// New wires a database-backed server. conn may be nil for development
// runs, in which case everything lives in memory.
func New(conn *gorm.DB, cfg config.Config) *Server {
	s := &Server{
		db:  conn,
		cfg: cfg,
		hub: newLeaderboardHub(),
	}
	if conn != nil {
		s.content = content.NewGormStore(conn)
		s.ledger = ledger.NewGormLedger(conn)
		s.players = newGormPlayers(conn)
		s.clock = newGormClock(conn)
	} else {
		s.content = content.NewMemoryStore()
		s.ledger = ledger.NewMemoryLedger()
		s.players = newMemoryPlayers()
		s.clock = newMemoryClock()
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/content", s.handleContent)
	mux.HandleFunc("GET /api/attempts/status", s.handleAttemptStatus)
	mux.HandleFunc("POST /api/attempts/progress", s.handleProgress)
	mux.HandleFunc("POST /api/attempts/finalize", s.handleFinalize)
	mux.HandleFunc("POST /api/submit", s.handleLegacySubmit)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboardView)
	mux.HandleFunc("GET /ws/leaderboard", s.handleLeaderboardSocket)
	mux.Handle("/admin/", s.adminRouter())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
