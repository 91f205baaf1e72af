package pathfind

import (
	"fmt"
	"strings"

	"github.com/milk9111/gridpath/grid"
)

// FormatPath writes one "x y z" line per node of path, in world units.
func FormatPath(path []*grid.Node) string {
	var b strings.Builder
	for _, n := range path {
		p := n.Position()
		fmt.Fprintf(&b, "%g %g %g\n", p[0], p[1], p[2])
	}
	return b.String()
}

// RenderASCII draws g with the highest Z row first. Walkable cells are '.',
// blocked cells '#', path cells '*', the start 'S' and the target 'T'.
func RenderASCII(g *grid.Grid, start, target *grid.Node, path []*grid.Node) string {
	sx, sy := g.Size()
	onPath := make(map[int]bool, len(path))
	for _, n := range path {
		onPath[n.Index()] = true
	}

	var b strings.Builder
	b.Grow((sx + 1) * sy)
	for y := sy - 1; y >= 0; y-- {
		for x := 0; x < sx; x++ {
			n, _ := g.Node(x, y)
			switch {
			case n == start:
				b.WriteByte('S')
			case n == target:
				b.WriteByte('T')
			case onPath[n.Index()]:
				b.WriteByte('*')
			case !n.Walkable():
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
