package ledger

import (
	"encoding/json"
	"fmt"
	"sync"

	"puzzle-week/internal/event"
)

type memoryRecord struct {
	score          int
	detail         json.RawMessage
	contentVersion int64
	final          bool
}

// MemoryLedger implements the same state machine in process, one mutex
// over the whole map. Used by tests and database-free development runs.
type MemoryLedger struct {
	mu       sync.Mutex
	attempts map[event.AttemptKey]*memoryRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{attempts: make(map[event.AttemptKey]*memoryRecord)}
}

func (l *MemoryLedger) RecordProgress(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (Result, error) {
	if err := key.Validate(); err != nil {
		return Result{}, err
	}
	score = clampScore(score)

	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.attempts[key]
	if !ok {
		l.attempts[key] = &memoryRecord{score: score, detail: cloneDetail(detail), contentVersion: contentVersion}
		return Result{Score: score}, nil
	}
	if record.final {
		return Result{Score: record.score, Final: true}, fmt.Errorf("%w: %s", event.ErrConflict, key)
	}
	if score > record.score {
		record.score = score
	}
	record.detail = cloneDetail(detail)
	record.contentVersion = contentVersion
	return Result{Score: record.score}, nil
}

func (l *MemoryLedger) Finalize(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (Result, error) {
	if err := key.Validate(); err != nil {
		return Result{}, err
	}
	score = clampScore(score)

	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.attempts[key]
	if !ok {
		l.attempts[key] = &memoryRecord{score: score, detail: cloneDetail(detail), contentVersion: contentVersion, final: true}
		return Result{Score: score, Final: true}, nil
	}
	if record.final {
		return Result{Score: record.score, Final: true}, fmt.Errorf("%w: %s", event.ErrConflict, key)
	}
	if score > record.score {
		record.score = score
	}
	record.detail = cloneDetail(detail)
	record.contentVersion = contentVersion
	record.final = true
	return Result{Score: record.score, Final: true}, nil
}

func (l *MemoryLedger) Status(key event.AttemptKey) (Status, error) {
	if err := key.Validate(); err != nil {
		return Status{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.attempts[key]
	if !ok {
		return Status{}, nil
	}
	return Status{Exists: true, Final: record.final, Score: record.score}, nil
}

func (l *MemoryLedger) Reset(filter Filter) (int64, error) {
	if filter.Empty() {
		return 0, fmt.Errorf("%w: reset filter is empty", event.ErrValidation)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	var removed int64
	for key := range l.attempts {
		if filter.PlayerID != "" && key.PlayerID != filter.PlayerID {
			continue
		}
		if filter.Day != 0 && key.Day != filter.Day {
			continue
		}
		if filter.Game != "" && key.Game != filter.Game {
			continue
		}
		if filter.Slot != "" && key.Slot != filter.Slot {
			continue
		}
		delete(l.attempts, key)
		removed++
	}
	return removed, nil
}

func cloneDetail(detail json.RawMessage) json.RawMessage {
	if detail == nil {
		return nil
	}
	return append(json.RawMessage(nil), detail...)
}
