package pathfind

import (
	"github.com/milk9111/gridpath/common"
	"github.com/milk9111/gridpath/grid"
)

const (
	StraightCost = 10
	DiagonalCost = 14
)

// Distance is the octile distance between two cells. It is both the step
// cost between neighbors and the heuristic toward the target.
func Distance(a, b *grid.Node) int {
	return octile(a.GridX()-b.GridX(), a.GridY()-b.GridY())
}

func octile(dx, dy int) int {
	dx = common.AbsInt(dx)
	dy = common.AbsInt(dy)
	if dx > dy {
		return DiagonalCost*dy + StraightCost*(dx-dy)
	}
	return DiagonalCost*dx + StraightCost*(dy-dx)
}
