package ledger

import (
	"encoding/json"

	"puzzle-week/internal/event"
)

// The ledger is the authoritative record of play. Each attempt moves
// NotStarted → InProgress → Final with no way back: progress calls may
// only raise the score, and exactly one finalize wins per key.

type Status struct {
	Exists bool `json:"exists"`
	Final  bool `json:"final"`
	Score  int  `json:"score"`
}

type Result struct {
	Score int  `json:"score"`
	Final bool `json:"final"`
}

// Filter selects attempts for an admin reset. Zero values are wildcards;
// at least PlayerID or Day must be set so a typo cannot clear the event.
type Filter struct {
	PlayerID string
	Day      int
	Game     event.Game
	Slot     string
}

func (f Filter) Empty() bool {
	return f.PlayerID == "" && f.Day == 0 && f.Game == "" && f.Slot == ""
}

type Ledger interface {
	// RecordProgress creates or raises an in-progress attempt. Returns
	// ErrConflict (with the stored state) if the attempt is already final.
	RecordProgress(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (Result, error)
	// Finalize locks the attempt at max(existing, score). At most one
	// finalize per key ever succeeds; later calls return ErrConflict and
	// leave the record untouched.
	Finalize(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (Result, error)
	Status(key event.AttemptKey) (Status, error)
	// Reset bulk-deletes attempts matched by filter and reports how many
	// rows went away. Operator-only.
	Reset(filter Filter) (int64, error)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
