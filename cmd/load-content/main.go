package main

import (
	"encoding/json"
	"flag"
	"os"

	"puzzle-week/internal/config"
	"puzzle-week/internal/content"
	"puzzle-week/internal/db"
	"puzzle-week/internal/event"

	"github.com/rs/zerolog/log"
)

// contentEntry is one row of the bulk-ingestion manifest: the exact
// content key plus the game payload.
type contentEntry struct {
	Day     int             `json:"day"`
	Game    string          `json:"game"`
	Slot    string          `json:"slot,omitempty"`
	Group   string          `json:"group,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

func main() {
	filePath := flag.String("file", "content.json", "path to content manifest")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	entries, err := readManifest(*filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read content manifest")
	}

	store := content.NewGormStore(conn)
	loaded := 0
	for _, entry := range entries {
		game, err := event.ParseGame(entry.Game)
		if err != nil {
			log.Fatal().Err(err).Int("day", entry.Day).Msg("manifest entry rejected")
		}
		clock := event.Clock{Day: entry.Day, Slot: entry.Slot}
		version, err := store.Upsert(clock, game, event.AudienceGroup(entry.Group), entry.Payload)
		if err != nil {
			log.Fatal().Err(err).Int("day", entry.Day).Str("game", entry.Game).Msg("upsert failed")
		}
		log.Info().Int("day", entry.Day).Str("game", entry.Game).Int64("version", version).Msg("content loaded")
		loaded++
	}
	log.Info().Int("count", loaded).Msg("content manifest applied")
}

func readManifest(path string) ([]contentEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []contentEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
