package puzzle

import (
	"bytes"
	"testing"
)

func TestGenerateWordSearchPlacesEveryWord(t *testing.T) {
	words := []string{"LONDON", "PARIS", "MADRID", "OSLO", "LIMA"}
	grid, placements, err := GenerateWordSearch(words, 9, "day2-v7", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(placements) != len(words) {
		t.Fatalf("expected %d placements, got %d", len(words), len(placements))
	}
	for _, p := range placements {
		assertPlacementOnGrid(t, grid, p)
	}
}

func TestGenerateWordSearchDeterministic(t *testing.T) {
	words := []string{"LONDON", "PARIS"}
	first, _, err := GenerateWordSearch(words, 9, "day2-v7", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	second, _, err := GenerateWordSearch(words, 9, "day2-v7", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("same seed produced different grids:\n%s\n%s", first, second)
	}
	other, _, err := GenerateWordSearch(words, 9, "day3-v7", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if first.String() == other.String() {
		t.Fatal("different seeds produced identical grids")
	}
}

func TestGenerateWordSearchFillsEveryCell(t *testing.T) {
	grid, _, err := GenerateWordSearch([]string{"GO"}, 5, "fill-check", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for r, row := range grid {
		for c, cell := range row {
			if cell < 'A' || cell > 'Z' {
				t.Fatalf("cell (%d,%d) not filled: %q", r, c, cell)
			}
		}
	}
}

func TestGenerateWordSearchDenseList(t *testing.T) {
	words := []string{"ABCDE", "FGHIJ", "KLMNO", "PQRST", "UVWXY"}
	grid, placements, err := GenerateWordSearch(words, 7, "dense", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, p := range placements {
		assertPlacementOnGrid(t, grid, p)
	}
}

func TestGenerateWordSearchHonorsPinnedPlacements(t *testing.T) {
	words := []string{"LONDON", "PARIS", "OSLO"}
	pins := []Placement{{Word: "paris", Row: 2, Col: 3, Dir: 1}}
	grid, placements, err := GenerateWordSearch(words, 9, "day2-v7", pins)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	found := false
	for _, p := range placements {
		if p.Word == "PARIS" {
			found = true
			if p.Row != 2 || p.Col != 3 || p.Dir != 1 {
				t.Fatalf("pinned word moved: got (%d,%d) dir %d", p.Row, p.Col, p.Dir)
			}
		}
		assertPlacementOnGrid(t, grid, p)
	}
	if !found {
		t.Fatal("pinned word missing from placements")
	}

	again, _, err := GenerateWordSearch(words, 9, "day2-v7", pins)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if grid.String() != again.String() {
		t.Fatal("pinned generation is not deterministic")
	}
}

func TestGenerateWordSearchRejectsBadPin(t *testing.T) {
	words := []string{"LONDON"}
	cases := []Placement{
		{Word: "LONDON", Row: 8, Col: 8, Dir: 0},  // runs off the right edge
		{Word: "LONDON", Row: -1, Col: 0, Dir: 1}, // starts off the grid
		{Word: "LONDON", Row: 0, Col: 0, Dir: 9},  // unknown direction
		{Word: "  ", Row: 0, Col: 0, Dir: 0},      // blank word
	}
	for _, pin := range cases {
		if _, _, err := GenerateWordSearch(words, 9, "s", []Placement{pin}); err == nil {
			t.Fatalf("expected error for pin %+v", pin)
		}
	}
}

func TestGenerateWordSearchRejectsConflictingPins(t *testing.T) {
	// Two pins crossing at (0,0) with different letters cannot coexist.
	pins := []Placement{
		{Word: "AAA", Row: 0, Col: 0, Dir: 0},
		{Word: "BBB", Row: 0, Col: 0, Dir: 1},
	}
	if _, _, err := GenerateWordSearch([]string{"AAA", "BBB"}, 9, "s", pins); err == nil {
		t.Fatal("expected error for conflicting pins")
	}
}

func TestGenerateWordSearchForcesOversizedWord(t *testing.T) {
	// A word longer than the grid can never fit; the forced fallback
	// writes it straight across row 0, truncated at the edge.
	grid, placements, err := GenerateWordSearch([]string{"ALPHABETICAL"}, 5, "oversized", nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if placements[0].Row != 0 || placements[0].Col != 0 {
		t.Fatalf("expected forced placement at origin, got %+v", placements[0])
	}
	assertPlacementOnGrid(t, grid, placements[0])
}

func TestGenerateWordSearchRejectsBadInput(t *testing.T) {
	if _, _, err := GenerateWordSearch(nil, 9, "s", nil); err == nil {
		t.Fatal("expected error for empty word list")
	}
	if _, _, err := GenerateWordSearch([]string{"HI"}, 1, "s", nil); err == nil {
		t.Fatal("expected error for tiny grid")
	}
	if _, _, err := GenerateWordSearch([]string{"  "}, 9, "s", nil); err == nil {
		t.Fatal("expected error for blank word")
	}
}

func assertPlacementOnGrid(t *testing.T, grid Grid, p Placement) {
	t.Helper()
	dr, dc := directions[p.Dir][0], directions[p.Dir][1]
	length := len(p.Word)
	if length > len(grid) {
		length = len(grid) // forced placements truncate at the edge
	}
	var got bytes.Buffer
	for i := 0; i < length; i++ {
		got.WriteByte(grid[p.Row+dr*i][p.Col+dc*i])
	}
	if got.String() != p.Word[:length] {
		t.Fatalf("word %s not on grid at (%d,%d) dir %d: read %s", p.Word, p.Row, p.Col, p.Dir, got.String())
	}
}
