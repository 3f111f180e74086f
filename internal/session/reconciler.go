package session

import (
	"encoding/json"
	"sync"
	"time"

	"puzzle-week/internal/event"
	"puzzle-week/internal/ledger"

	"github.com/rs/zerolog/log"
)

// API is the server surface the reconciler talks to. The ledger
// implementations satisfy it directly; over the wire an HTTP client does.
type API interface {
	Status(key event.AttemptKey) (ledger.Status, error)
	RecordProgress(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (ledger.Result, error)
	Finalize(key event.AttemptKey, score int, detail json.RawMessage, contentVersion int64) (ledger.Result, error)
}

// View is what a game page renders after mount.
type View[D any] struct {
	Locked  bool
	Resumed bool
	Score   int
	Detail  D
}

// Reconciler drives one game page's session against the authoritative
// server: resume cached progress, replay a locked view, or start fresh.
// The server is never trusted less than the local cache — only a
// Conflict or a final status can set the permanent lock, and clearing
// local storage cannot unlock a finished game because Mount re-consults
// the server every time.
type Reconciler[D any] struct {
	api            API
	cache          Cache[D]
	key            event.AttemptKey
	contentVersion int64

	mu        sync.Mutex
	locked    bool
	score     int
	finalized bool
	timer     *time.Timer
}

func New[D any](api API, cache Cache[D], key event.AttemptKey, contentVersion int64) *Reconciler[D] {
	return &Reconciler[D]{api: api, cache: cache, key: key, contentVersion: contentVersion}
}

// Mount runs the status check that precedes any interactive rendering.
func (r *Reconciler[D]) Mount() View[D] {
	status, err := r.api.Status(r.key)
	if err != nil {
		// Offline: fall back to the cached done flag if present, else
		// proceed optimistically. Forgeable by design; see DESIGN.md.
		log.Warn().Err(err).Str("key", r.key.String()).Msg("status check failed, using local cache")
		return r.mountOffline()
	}
	if status.Final {
		r.lock(status.Score)
		r.cache.Save(r.key, Entry[D]{ContentVersion: r.contentVersion, Score: status.Score, Done: true})
		return View[D]{Locked: true, Score: status.Score}
	}
	if entry, ok := r.cache.Load(r.key); ok && entry.ContentVersion == r.contentVersion && !entry.Done {
		r.setScore(entry.Score)
		return View[D]{Resumed: true, Score: entry.Score, Detail: entry.Detail}
	}
	// A content-version change discards stale progress and starts over.
	return View[D]{Score: status.Score}
}

func (r *Reconciler[D]) mountOffline() View[D] {
	entry, ok := r.cache.Load(r.key)
	if !ok {
		return View[D]{}
	}
	if entry.Done {
		r.lock(entry.Score)
		return View[D]{Locked: true, Score: entry.Score}
	}
	if entry.ContentVersion == r.contentVersion {
		r.setScore(entry.Score)
		return View[D]{Resumed: true, Score: entry.Score, Detail: entry.Detail}
	}
	return View[D]{}
}

// Progress records a completed unit. Local cache is written first — it is
// the fallback of record — then the server call is fire-and-forget:
// transient failures keep playing, a conflict locks immediately.
func (r *Reconciler[D]) Progress(score int, detail D) {
	r.mu.Lock()
	if r.locked {
		r.mu.Unlock()
		return
	}
	if score > r.score {
		r.score = score
	}
	score = r.score
	r.mu.Unlock()

	r.cache.Save(r.key, Entry[D]{ContentVersion: r.contentVersion, Score: score, Detail: detail})
	result, err := r.api.RecordProgress(r.key, score, mustDetail(detail), r.contentVersion)
	switch {
	case err == nil:
		r.setScore(result.Score)
	case event.IsConflict(err):
		r.lock(result.Score)
		r.cache.Save(r.key, Entry[D]{ContentVersion: r.contentVersion, Score: result.Score, Done: true})
	default:
		log.Warn().Err(err).Str("key", r.key.String()).Msg("progress not saved remotely, kept locally")
	}
}

// Complete is the all-units-solved trigger. It races the deadline timer;
// whichever fires first finalizes, the other is a no-op.
func (r *Reconciler[D]) Complete(score int, detail D) {
	r.finalizeOnce(score, detail)
}

// StartDeadline arms the timed-game expiry. snapshot captures the play
// state at the moment the timer fires.
func (r *Reconciler[D]) StartDeadline(d time.Duration, snapshot func() (int, D)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(d, func() {
		score, detail := snapshot()
		r.finalizeOnce(score, detail)
	})
}

func (r *Reconciler[D]) finalizeOnce(score int, detail D) {
	r.mu.Lock()
	if r.finalized {
		r.mu.Unlock()
		return
	}
	r.finalized = true
	if score < r.score {
		score = r.score
	}
	// Lock before the network round trip so a slow response cannot let
	// play continue past completion.
	r.locked = true
	r.score = score
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()

	r.cache.Save(r.key, Entry[D]{ContentVersion: r.contentVersion, Score: score, Detail: detail, Done: true})
	result, err := r.api.Finalize(r.key, score, mustDetail(detail), r.contentVersion)
	switch {
	case err == nil, event.IsConflict(err):
		r.adopt(result.Score)
		r.cache.Save(r.key, Entry[D]{ContentVersion: r.contentVersion, Score: result.Score, Done: true})
	default:
		log.Warn().Err(err).Str("key", r.key.String()).Msg("finalize not delivered, locked locally")
	}
}

// Locked reports whether the page should refuse further input.
func (r *Reconciler[D]) Locked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locked
}

func (r *Reconciler[D]) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

// lock adopts the server's score as-is: once an attempt is final the
// server is the only authority, even if the local cache claims more.
func (r *Reconciler[D]) lock(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = true
	r.finalized = true
	r.score = score
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Reconciler[D]) adopt(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.score = score
}

func (r *Reconciler[D]) setScore(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if score > r.score {
		r.score = score
	}
}

func mustDetail[D any](detail D) json.RawMessage {
	raw, err := json.Marshal(detail)
	if err != nil {
		return nil
	}
	return raw
}
