package event

import (
	"fmt"
	"strings"
)

// Game identifies one of the event's playable games.
type Game string

const (
	GameQuiz       Game = "quiz"
	GameWordSearch Game = "wordsearch"
	GameJigsaw     Game = "jigsaw"
	GameCrossword  Game = "crossword"
)

var knownGames = map[Game]struct{}{
	GameQuiz:       {},
	GameWordSearch: {},
	GameJigsaw:     {},
	GameCrossword:  {},
}

func ParseGame(raw string) (Game, error) {
	game := Game(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownGames[game]; !ok {
		return "", fmt.Errorf("%w: unknown game %q", ErrValidation, raw)
	}
	return game, nil
}

// Clock is the event position a request plays against. It is passed
// explicitly on every content and ledger call rather than read from
// ambient server state.
type Clock struct {
	Day  int    `json:"day"`
	Slot string `json:"slot,omitempty"`
}

const MaxDay = 14

func (c Clock) Validate() error {
	if c.Day < 1 || c.Day > MaxDay {
		return fmt.Errorf("%w: day %d out of range 1..%d", ErrValidation, c.Day, MaxDay)
	}
	if len(c.Slot) > 32 {
		return fmt.Errorf("%w: slot too long", ErrValidation)
	}
	return nil
}

// AudienceGroup narrows content to a sub-population. Empty means the
// general audience and doubles as the fallback bucket.
type AudienceGroup string

func (g AudienceGroup) General() bool { return g == "" }

// AttemptKey addresses one player's attempt at one game. Slot is empty
// for games that run once per day.
type AttemptKey struct {
	PlayerID string
	Day      int
	Game     Game
	Slot     string
}

func (k AttemptKey) Validate() error {
	if strings.TrimSpace(k.PlayerID) == "" {
		return fmt.Errorf("%w: player id is required", ErrValidation)
	}
	if _, ok := knownGames[k.Game]; !ok {
		return fmt.Errorf("%w: unknown game %q", ErrValidation, k.Game)
	}
	return Clock{Day: k.Day, Slot: k.Slot}.Validate()
}

func (k AttemptKey) String() string {
	return fmt.Sprintf("%s/day%d/%s/%s", k.PlayerID, k.Day, k.Game, k.Slot)
}
