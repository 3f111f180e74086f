package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"puzzle-week/internal/db"
	"puzzle-week/internal/event"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolved is the effective content for a request: the current version of
// the best-matching payload.
type Resolved struct {
	Version int64           `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

// Store resolves and replaces versioned puzzle payloads. Resolution
// prefers an exact audience-group row and falls back to the general
// (empty-group) row for the same (day, game, slot).
type Store interface {
	Resolve(clock event.Clock, game event.Game, group event.AudienceGroup) (Resolved, error)
	Upsert(clock event.Clock, game event.Game, group event.AudienceGroup, payload json.RawMessage) (int64, error)
}

type GormStore struct {
	conn *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{conn: conn}
}

func (s *GormStore) Resolve(clock event.Clock, game event.Game, group event.AudienceGroup) (Resolved, error) {
	if err := clock.Validate(); err != nil {
		return Resolved{}, err
	}
	if _, err := event.ParseGame(string(game)); err != nil {
		return Resolved{}, err
	}
	record, err := s.lookup(clock, game, string(group))
	if err != nil && !group.General() && errors.Is(err, event.ErrNotFound) {
		record, err = s.lookup(clock, game, "")
	}
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Version: record.Version, Payload: json.RawMessage(record.Payload)}, nil
}

func (s *GormStore) lookup(clock event.Clock, game event.Game, group string) (db.PuzzleContent, error) {
	var record db.PuzzleContent
	err := s.conn.
		Where("day = ? AND game = ? AND slot = ? AND audience_group = ?", clock.Day, string(game), clock.Slot, group).
		Order("version DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record, fmt.Errorf("%w: no content for day %d %s", event.ErrNotFound, clock.Day, game)
	}
	return record, err
}

// Upsert validates and replaces the current payload for the exact key,
// always under a fresh version. Payload fields are never merged.
func (s *GormStore) Upsert(clock event.Clock, game event.Game, group event.AudienceGroup, payload json.RawMessage) (int64, error) {
	if err := clock.Validate(); err != nil {
		return 0, err
	}
	if err := ValidatePayload(game, payload); err != nil {
		return 0, err
	}
	version := time.Now().UnixMilli()
	var existing db.PuzzleContent
	err := s.conn.
		Where("day = ? AND game = ? AND slot = ? AND audience_group = ?", clock.Day, string(game), clock.Slot, string(group)).
		First(&existing).Error
	if err == nil && existing.Version >= version {
		version = existing.Version + 1
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	record := db.PuzzleContent{
		Day:           clock.Day,
		Game:          string(game),
		Slot:          clock.Slot,
		AudienceGroup: string(group),
		Version:       version,
		Payload:       []byte(payload),
	}
	err = s.conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}, {Name: "game"}, {Name: "slot"}, {Name: "audience_group"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return 0, err
	}
	return version, nil
}
