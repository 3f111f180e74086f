package puzzle

import (
	"strings"
	"testing"
)

func TestJigsawEdgesComplementary(t *testing.T) {
	pieces, err := JigsawEdges(4, 6, "day3-v2-4x6")
	if err != nil {
		t.Fatalf("edges failed: %v", err)
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 6; c++ {
			if c+1 < 6 {
				if pieces[r][c].Right != -pieces[r][c+1].Left {
					t.Fatalf("pieces (%d,%d) and (%d,%d) do not interlock horizontally", r, c, r, c+1)
				}
			}
			if r+1 < 4 {
				if pieces[r][c].Bottom != -pieces[r+1][c].Top {
					t.Fatalf("pieces (%d,%d) and (%d,%d) do not interlock vertically", r, c, r+1, c)
				}
			}
		}
	}
}

func TestJigsawEdgesBordersFlat(t *testing.T) {
	pieces, err := JigsawEdges(3, 3, "borders")
	if err != nil {
		t.Fatalf("edges failed: %v", err)
	}
	for c := 0; c < 3; c++ {
		if pieces[0][c].Top != EdgeFlat {
			t.Fatalf("top border piece %d not flat", c)
		}
		if pieces[2][c].Bottom != EdgeFlat {
			t.Fatalf("bottom border piece %d not flat", c)
		}
	}
	for r := 0; r < 3; r++ {
		if pieces[r][0].Left != EdgeFlat {
			t.Fatalf("left border piece %d not flat", r)
		}
		if pieces[r][2].Right != EdgeFlat {
			t.Fatalf("right border piece %d not flat", r)
		}
	}
}

func TestJigsawEdgesDeterministic(t *testing.T) {
	first, err := JigsawEdges(5, 5, "repeat")
	if err != nil {
		t.Fatalf("edges failed: %v", err)
	}
	second, err := JigsawEdges(5, 5, "repeat")
	if err != nil {
		t.Fatalf("edges failed: %v", err)
	}
	for r := range first {
		for c := range first[r] {
			if first[r][c] != second[r][c] {
				t.Fatalf("piece (%d,%d) differs between runs", r, c)
			}
		}
	}
}

func TestJigsawEdgesRejectsEmptyGrid(t *testing.T) {
	if _, err := JigsawEdges(0, 4, "s"); err == nil {
		t.Fatal("expected error for zero rows")
	}
}

func TestOutlinePathClosed(t *testing.T) {
	pieces, err := JigsawEdges(2, 2, "outline")
	if err != nil {
		t.Fatalf("edges failed: %v", err)
	}
	path := OutlinePath(pieces[0][0], 100)
	if !strings.HasPrefix(path, "M 0 0") || !strings.HasSuffix(path, "Z") {
		t.Fatalf("outline path not closed: %s", path)
	}
	// An interior-facing edge contributes curve segments.
	if !strings.Contains(path, "C ") {
		t.Fatalf("expected a bump or notch curve in %s", path)
	}
}

func TestSeedStable(t *testing.T) {
	words := []string{"london", " PARIS "}
	seed := Seed(2, "wordsearch", 7, WordMaterial(words))
	if seed != "day2-wordsearch-v7-LONDON,PARIS" {
		t.Fatalf("unexpected seed %q", seed)
	}
}
