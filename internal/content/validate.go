package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"puzzle-week/internal/event"
	"puzzle-week/internal/puzzle"
)

const (
	maxQuestions    = 50
	maxWords        = 40
	maxWordLength   = 24
	maxJigsawSide   = 20
	maxGridRows     = 30
	minGridSize     = 5
	maxGridSize     = 20
	maxOptionLength = 200
)

// ValidatePayload structurally checks an uploaded payload for its game
// type before anything is written. All failures wrap ErrValidation so the
// caller can answer 400 rather than 500.
func ValidatePayload(game event.Game, raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: payload is required", event.ErrValidation)
	}
	switch game {
	case event.GameQuiz:
		return validateQuiz(raw)
	case event.GameWordSearch:
		return validateWordSearch(raw)
	case event.GameJigsaw:
		return validateJigsaw(raw)
	case event.GameCrossword:
		return validateCrossword(raw)
	default:
		return fmt.Errorf("%w: unknown game %q", event.ErrValidation, game)
	}
}

func validateQuiz(raw json.RawMessage) error {
	var payload QuizPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return err
	}
	if len(payload.Questions) == 0 || len(payload.Questions) > maxQuestions {
		return fmt.Errorf("%w: quiz needs 1..%d questions", event.ErrValidation, maxQuestions)
	}
	for i, q := range payload.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("%w: question %d has no prompt", event.ErrValidation, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least 2 options", event.ErrValidation, i+1)
		}
		for _, opt := range q.Options {
			if len(opt) > maxOptionLength {
				return fmt.Errorf("%w: question %d option too long", event.ErrValidation, i+1)
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d correct index out of range", event.ErrValidation, i+1)
		}
	}
	return nil
}

func validateWordSearch(raw json.RawMessage) error {
	var payload WordSearchPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return err
	}
	if len(payload.Words) == 0 || len(payload.Words) > maxWords {
		return fmt.Errorf("%w: word search needs 1..%d words", event.ErrValidation, maxWords)
	}
	size := payload.GridSize
	if size != 0 && (size < minGridSize || size > maxGridSize) {
		return fmt.Errorf("%w: grid size must be %d..%d", event.ErrValidation, minGridSize, maxGridSize)
	}
	for _, word := range payload.Words {
		trimmed := strings.TrimSpace(word)
		if trimmed == "" || len(trimmed) > maxWordLength {
			return fmt.Errorf("%w: word %q must be 1..%d characters", event.ErrValidation, word, maxWordLength)
		}
		for _, r := range strings.ToUpper(trimmed) {
			if r < 'A' || r > 'Z' {
				return fmt.Errorf("%w: word %q has non-letter characters", event.ErrValidation, word)
			}
		}
		if size != 0 && len(trimmed) > size {
			return fmt.Errorf("%w: word %q does not fit a %d grid", event.ErrValidation, word, size)
		}
	}
	if len(payload.Placements) > 0 {
		if size == 0 {
			return fmt.Errorf("%w: placements require an explicit grid_size", event.ErrValidation)
		}
		// Dry-run the generator so infeasible pins are rejected at
		// upload instead of surfacing when a player mounts the page.
		if _, _, err := puzzle.GenerateWordSearch(payload.Words, size, "validate", payload.PinnedPlacements()); err != nil {
			return err
		}
	}
	if payload.PointsPerWord < 0 || payload.Cap < 0 {
		return fmt.Errorf("%w: negative scoring parameters", event.ErrValidation)
	}
	return nil
}

func validateJigsaw(raw json.RawMessage) error {
	var payload JigsawPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return err
	}
	if strings.TrimSpace(payload.ImageURL) == "" {
		return fmt.Errorf("%w: jigsaw needs an image", event.ErrValidation)
	}
	if payload.Rows < 1 || payload.Cols < 1 || payload.Rows > maxJigsawSide || payload.Cols > maxJigsawSide {
		return fmt.Errorf("%w: jigsaw grid must be 1..%d per side", event.ErrValidation, maxJigsawSide)
	}
	if payload.PointsPerPiece < 0 || payload.Cap < 0 || payload.DurationSeconds < 0 {
		return fmt.Errorf("%w: negative jigsaw parameters", event.ErrValidation)
	}
	return nil
}

func validateCrossword(raw json.RawMessage) error {
	var payload CrosswordPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return err
	}
	if len(payload.Grid) == 0 || len(payload.Grid) > maxGridRows {
		return fmt.Errorf("%w: crossword needs 1..%d grid rows", event.ErrValidation, maxGridRows)
	}
	width := len(payload.Grid[0])
	for i, row := range payload.Grid {
		if len(row) != width {
			return fmt.Errorf("%w: grid row %d is ragged", event.ErrValidation, i+1)
		}
	}
	if len(payload.Clues) == 0 {
		return fmt.Errorf("%w: crossword needs clues", event.ErrValidation)
	}
	for _, clue := range payload.Clues {
		if strings.TrimSpace(clue.Answer) == "" {
			return fmt.Errorf("%w: clue %d has no answer", event.ErrValidation, clue.Number)
		}
		if clue.Row < 0 || clue.Row >= len(payload.Grid) || clue.Col < 0 || clue.Col >= width {
			return fmt.Errorf("%w: clue %d starts out of bounds", event.ErrValidation, clue.Number)
		}
	}
	return nil
}

func decodeStrict(raw json.RawMessage, dest any) error {
	decoder := json.NewDecoder(strings.NewReader(string(raw)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", event.ErrValidation, err)
	}
	return nil
}
