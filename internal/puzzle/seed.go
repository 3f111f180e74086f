package puzzle

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"puzzle-week/internal/event"
)

// Seed builds the canonical seed string for a puzzle instance. The same
// (day, game, content version, material) always produces the same seed, so
// a client can rebuild the exact grid after a reload without the server
// ever sending the solved state. Material is the word list joined with
// "," for word search, "RxC" for jigsaw.
func Seed(day int, game event.Game, version int64, material string) string {
	return fmt.Sprintf("day%d-%s-v%d-%s", day, game, version, material)
}

// WordMaterial canonicalizes a word list for seeding: changing the list
// (order included) changes the seed and wipes saved progress.
func WordMaterial(words []string) string {
	upper := make([]string, len(words))
	for i, w := range words {
		upper[i] = strings.ToUpper(strings.TrimSpace(w))
	}
	return strings.Join(upper, ",")
}

// newRand derives a PRNG from a seed string via FNV-64a.
func newRand(seed string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
