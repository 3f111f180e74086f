package puzzle

import (
	"fmt"
	"math/rand"

	"puzzle-week/internal/event"
)

// Edge is one side of a jigsaw piece: flat on the border, otherwise a tab
// sticking out (+1) or a notch cut in (-1).
type Edge int8

const (
	EdgeFlat  Edge = 0
	EdgeTab   Edge = 1
	EdgeNotch Edge = -1
)

type PieceEdges struct {
	Top    Edge `json:"top"`
	Right  Edge `json:"right"`
	Bottom Edge `json:"bottom"`
	Left   Edge `json:"left"`
}

// JigsawEdges assigns tab/notch flags to every piece of a rows×cols
// puzzle from a single seed. The walk is row-major: each piece's top and
// left edges are forced to complement the neighbour already assigned, and
// only its right and bottom edges draw fresh randomness. Adjacent pieces
// therefore interlock by construction, with no validation pass needed.
func JigsawEdges(rows, cols int, seed string) ([][]PieceEdges, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: jigsaw grid %dx%d", event.ErrValidation, rows, cols)
	}
	rng := newRand(seed)
	pieces := make([][]PieceEdges, rows)
	for r := range pieces {
		pieces[r] = make([]PieceEdges, cols)
		for c := range pieces[r] {
			p := PieceEdges{}
			if r > 0 {
				p.Top = -pieces[r-1][c].Bottom
			}
			if c > 0 {
				p.Left = -pieces[r][c-1].Right
			}
			if c < cols-1 {
				p.Right = randomEdge(rng)
			}
			if r < rows-1 {
				p.Bottom = randomEdge(rng)
			}
			pieces[r][c] = p
		}
	}
	return pieces, nil
}

func randomEdge(rng *rand.Rand) Edge {
	if rng.Intn(2) == 0 {
		return EdgeTab
	}
	return EdgeNotch
}
