package main

import (
	"net/http"
	"os"

	"puzzle-week/internal/config"
	"puzzle-week/internal/db"
	"puzzle-week/internal/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()

	var conn *gorm.DB
	if os.Getenv("DATABASE_URL") != "" {
		opened, err := db.Open()
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		if err := db.Tune(opened, cfg); err != nil {
			log.Fatal().Err(err).Msg("connection pool setup failed")
		}
		if err := db.Migrate(opened); err != nil {
			log.Fatal().Err(err).Msg("database migration failed")
		}
		conn = opened
	} else {
		log.Warn().Msg("DATABASE_URL not set, running with in-memory stores")
	}

	addr := ":" + getEnv("PORT", "8080")
	srv := server.New(conn, cfg)
	log.Info().Str("addr", addr).Msg("puzzle-week server listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
