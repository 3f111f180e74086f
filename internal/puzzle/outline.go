package puzzle

import (
	"fmt"
	"strings"
)

// OutlinePath renders a piece's four edge flags as a closed SVG path of
// the given side length, starting at the piece's top-left corner. Flat
// edges are straight lines; tabs and notches are a symmetric bump drawn
// with two cubic curves around the edge midpoint. Rendering only — the
// scoring core never looks at this.
func OutlinePath(p PieceEdges, size float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M 0 0")
	edgeSegment(&b, p.Top, size, 0, 0, 1, 0, 0, 1)
	edgeSegment(&b, p.Right, size, size, 0, 0, 1, -1, 0)
	edgeSegment(&b, p.Bottom, size, size, size, -1, 0, 0, -1)
	edgeSegment(&b, p.Left, size, 0, size, 0, -1, 1, 0)
	b.WriteString(" Z")
	return b.String()
}

// edgeSegment appends one edge running from (x,y) along direction (dx,dy)
// for size units. (nx,ny) is the outward normal a tab bumps toward.
func edgeSegment(b *strings.Builder, e Edge, size, x, y, dx, dy, nx, ny float64) {
	if e == EdgeFlat {
		fmt.Fprintf(b, " L %s %s", coord(x+dx*size), coord(y+dy*size))
		return
	}
	depth := size * 0.2 * float64(e) * -1 // notch digs inward, tab bumps out
	third := size / 3
	midX := x + dx*size/2
	midY := y + dy*size/2
	fmt.Fprintf(b, " L %s %s", coord(x+dx*third), coord(y+dy*third))
	fmt.Fprintf(b, " C %s %s %s %s %s %s",
		coord(midX+nx*depth-dx*third/2), coord(midY+ny*depth-dy*third/2),
		coord(midX+nx*depth+dx*third/2), coord(midY+ny*depth+dy*third/2),
		coord(x+dx*2*third), coord(y+dy*2*third))
	fmt.Fprintf(b, " L %s %s", coord(x+dx*size), coord(y+dy*size))
}

func coord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
