package content

import "puzzle-week/internal/puzzle"

// Game-specific payload shapes as uploaded by admins and served to
// players. The ledger and wire layer treat these as opaque JSON; only
// ingestion validation and scoring setup look inside.

type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type QuizPayload struct {
	Questions []QuizQuestion `json:"questions"`
}

// WordSearchPlacement optionally pins a word to an explicit spot instead
// of leaving it to the seeded generator.
type WordSearchPlacement struct {
	Word string `json:"word"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Dir  int    `json:"dir"`
}

type WordSearchPayload struct {
	Words         []string              `json:"words"`
	GridSize      int                   `json:"grid_size,omitempty"`
	PointsPerWord int                   `json:"points_per_word,omitempty"`
	Cap           int                   `json:"cap,omitempty"`
	Placements    []WordSearchPlacement `json:"placements,omitempty"`
}

// PinnedPlacements converts the payload pins for the generator.
func (p WordSearchPayload) PinnedPlacements() []puzzle.Placement {
	if len(p.Placements) == 0 {
		return nil
	}
	pins := make([]puzzle.Placement, len(p.Placements))
	for i, placement := range p.Placements {
		pins[i] = puzzle.Placement{
			Word: placement.Word,
			Row:  placement.Row,
			Col:  placement.Col,
			Dir:  placement.Dir,
		}
	}
	return pins
}

type JigsawPayload struct {
	ImageURL        string `json:"image_url"`
	Rows            int    `json:"rows"`
	Cols            int    `json:"cols"`
	PointsPerPiece  int    `json:"points_per_piece,omitempty"`
	Cap             int    `json:"cap,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

type CrosswordClue struct {
	Number int    `json:"number"`
	Across bool   `json:"across"`
	Clue   string `json:"clue"`
	Answer string `json:"answer"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type CrosswordPayload struct {
	Grid          []string        `json:"grid"` // '#' blocked, '.' open
	Clues         []CrosswordClue `json:"clues"`
	PointsPerClue int             `json:"points_per_clue,omitempty"`
	Cap           int             `json:"cap,omitempty"`
}
