package session

import (
	"sync"

	"puzzle-week/internal/event"
)

// Entry is one game page's locally cached progress, keyed by the exact
// attempt key plus the content version it was played against.
type Entry[D any] struct {
	ContentVersion int64 `json:"content_version"`
	Score          int   `json:"score"`
	Detail         D     `json:"detail"`
	Done           bool  `json:"done"`
}

// Cache abstracts the browser's local storage. It is advisory: the server
// decides finality, the cache only survives reloads and offline gaps.
type Cache[D any] interface {
	Load(key event.AttemptKey) (Entry[D], bool)
	Save(key event.AttemptKey, entry Entry[D])
	Clear(key event.AttemptKey)
}

// MemoryCache stands in for local storage in tests and headless clients.
type MemoryCache[D any] struct {
	mu      sync.Mutex
	entries map[event.AttemptKey]Entry[D]
}

func NewMemoryCache[D any]() *MemoryCache[D] {
	return &MemoryCache[D]{entries: make(map[event.AttemptKey]Entry[D])}
}

func (c *MemoryCache[D]) Load(key event.AttemptKey) (Entry[D], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *MemoryCache[D]) Save(key event.AttemptKey, entry Entry[D]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

func (c *MemoryCache[D]) Clear(key event.AttemptKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
