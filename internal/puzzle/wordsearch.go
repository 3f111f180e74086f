package puzzle

import (
	"fmt"
	"math/rand"
	"strings"

	"puzzle-week/internal/event"
)

// placementAttempts bounds the randomized phase per word before the
// deterministic sweep takes over.
const placementAttempts = 80

// Directions words may run in: right, down, down-right, up-right.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

type Placement struct {
	Word string `json:"word"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Dir  int    `json:"dir"`
}

// Grid is a filled word-search board, row-major, uppercase ASCII letters.
type Grid [][]byte

func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// GenerateWordSearch builds a size×size grid containing every word in
// list order. Identical (words, size, seed, pinned) always yields an
// identical grid. Pinned placements are written first, exactly where the
// content author put them; a pin that does not fit the grid is a
// validation error. Every remaining word runs through three phases:
// randomized attempts, a deterministic sweep over every (direction,
// start) combination, and a forced straight placement for words that
// cannot fit cleanly.
func GenerateWordSearch(words []string, size int, seed string, pinned []Placement) (Grid, []Placement, error) {
	if size < 2 {
		return nil, nil, fmt.Errorf("%w: grid size %d too small", event.ErrValidation, size)
	}
	if len(words) == 0 {
		return nil, nil, fmt.Errorf("%w: word list is empty", event.ErrValidation)
	}

	grid := make(Grid, size)
	for i := range grid {
		grid[i] = make([]byte, size)
	}

	pinnedByWord := make(map[string]Placement, len(pinned))
	for _, pin := range pinned {
		word := strings.ToUpper(strings.TrimSpace(pin.Word))
		if word == "" {
			return nil, nil, fmt.Errorf("%w: pinned placement with blank word", event.ErrValidation)
		}
		if pin.Dir < 0 || pin.Dir >= len(directions) {
			return nil, nil, fmt.Errorf("%w: pinned placement for %q has unknown direction %d", event.ErrValidation, word, pin.Dir)
		}
		if pin.Row < 0 || pin.Row >= size || pin.Col < 0 || pin.Col >= size {
			return nil, nil, fmt.Errorf("%w: pinned placement for %q starts off the grid", event.ErrValidation, word)
		}
		if !fits(grid, word, pin.Row, pin.Col, pin.Dir) {
			return nil, nil, fmt.Errorf("%w: pinned placement for %q does not fit", event.ErrValidation, word)
		}
		write(grid, word, pin.Row, pin.Col, pin.Dir)
		pinnedByWord[word] = Placement{Word: word, Row: pin.Row, Col: pin.Col, Dir: pin.Dir}
	}

	rng := newRand(seed)

	placements := make([]Placement, 0, len(words))
	for _, raw := range words {
		word := strings.ToUpper(strings.TrimSpace(raw))
		if word == "" {
			return nil, nil, fmt.Errorf("%w: blank word in list", event.ErrValidation)
		}
		if pin, ok := pinnedByWord[word]; ok {
			placements = append(placements, pin)
			continue
		}
		placement, ok := placeRandom(grid, word, rng)
		if !ok {
			placement, ok = placeSweep(grid, word)
		}
		if !ok {
			placement = placeForced(grid, word, len(placements))
		}
		placements = append(placements, placement)
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if grid[r][c] == 0 {
				grid[r][c] = byte('A' + rng.Intn(26))
			}
		}
	}
	return grid, placements, nil
}

func placeRandom(grid Grid, word string, rng *rand.Rand) (Placement, bool) {
	size := len(grid)
	for attempt := 0; attempt < placementAttempts; attempt++ {
		dir := rng.Intn(len(directions))
		row := rng.Intn(size)
		col := rng.Intn(size)
		if fits(grid, word, row, col, dir) {
			write(grid, word, row, col, dir)
			return Placement{Word: word, Row: row, Col: col, Dir: dir}, true
		}
	}
	return Placement{}, false
}

// placeSweep tries every (direction, start) combination in a fixed order
// so that a placement is found whenever one is geometrically possible.
func placeSweep(grid Grid, word string) (Placement, bool) {
	size := len(grid)
	for dir := range directions {
		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				if fits(grid, word, row, col, dir) {
					write(grid, word, row, col, dir)
					return Placement{Word: word, Row: row, Col: col, Dir: dir}, true
				}
			}
		}
	}
	return Placement{}, false
}

// placeForced writes the word straight across from a fallback row,
// overwriting whatever is there and truncating at the edge. Only reached
// for words longer than the grid or boards too dense to host them.
func placeForced(grid Grid, word string, index int) Placement {
	size := len(grid)
	row := index % size
	for i := 0; i < len(word) && i < size; i++ {
		grid[row][i] = word[i]
	}
	return Placement{Word: word, Row: row, Col: 0, Dir: 0}
}

func fits(grid Grid, word string, row, col, dir int) bool {
	size := len(grid)
	dr, dc := directions[dir][0], directions[dir][1]
	endRow := row + dr*(len(word)-1)
	endCol := col + dc*(len(word)-1)
	if endRow < 0 || endRow >= size || endCol < 0 || endCol >= size {
		return false
	}
	for i := 0; i < len(word); i++ {
		cell := grid[row+dr*i][col+dc*i]
		if cell != 0 && cell != word[i] {
			return false
		}
	}
	return true
}

func write(grid Grid, word string, row, col, dir int) {
	dr, dc := directions[dir][0], directions[dir][1]
	for i := 0; i < len(word); i++ {
		grid[row+dr*i][col+dc*i] = word[i]
	}
}
