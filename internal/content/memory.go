package content

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"puzzle-week/internal/event"
)

type contentKey struct {
	day   int
	game  event.Game
	slot  string
	group string
}

// MemoryStore keeps content in memory behind the same interface as the
// Postgres store. Used by tests and local development without a database.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[contentKey]Resolved
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[contentKey]Resolved)}
}

func (s *MemoryStore) Resolve(clock event.Clock, game event.Game, group event.AudienceGroup) (Resolved, error) {
	if err := clock.Validate(); err != nil {
		return Resolved{}, err
	}
	if _, err := event.ParseGame(string(game)); err != nil {
		return Resolved{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[contentKey{clock.Day, game, clock.Slot, string(group)}]; ok {
		return entry, nil
	}
	if entry, ok := s.entries[contentKey{clock.Day, game, clock.Slot, ""}]; ok {
		return entry, nil
	}
	return Resolved{}, fmt.Errorf("%w: no content for day %d %s", event.ErrNotFound, clock.Day, game)
}

func (s *MemoryStore) Upsert(clock event.Clock, game event.Game, group event.AudienceGroup, payload json.RawMessage) (int64, error) {
	if err := clock.Validate(); err != nil {
		return 0, err
	}
	if err := ValidatePayload(game, payload); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := contentKey{clock.Day, game, clock.Slot, string(group)}
	version := time.Now().UnixMilli()
	if existing, ok := s.entries[key]; ok && existing.Version >= version {
		version = existing.Version + 1
	}
	s.entries[key] = Resolved{Version: version, Payload: append(json.RawMessage(nil), payload...)}
	return version, nil
}
