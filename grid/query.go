package grid

import (
	"github.com/milk9111/gridpath/common"
	"github.com/ungerik/go3d/vec3"
)

// NodeFromWorldPoint maps a world point to a cell. Points outside the grid
// snap to the nearest edge cell.
func (g *Grid) NodeFromWorldPoint(p vec3.T) (*Node, error) {
	if g == nil {
		return nil, ErrNotBuilt
	}
	if g.sizeX == 0 || g.sizeY == 0 {
		return nil, ErrEmptyGrid
	}

	percentX := common.Clamp01((p[0] - g.origin[0] + g.worldSize[0]/2) / g.worldSize[0])
	percentY := common.Clamp01((p[2] - g.origin[2] + g.worldSize[1]/2) / g.worldSize[1])

	x := common.RoundToInt(float32(g.sizeX-1) * percentX)
	y := common.RoundToInt(float32(g.sizeY-1) * percentY)

	return &g.nodes[x*g.sizeY+y], nil
}

var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// AppendNeighbors appends the in-bounds cells of the 3x3 block around n,
// excluding n, to dst. Walkability is not checked.
func (g *Grid) AppendNeighbors(dst []*Node, n *Node) []*Node {
	if g == nil || n == nil {
		return dst
	}
	for _, off := range neighborOffsets {
		checkX := n.gridX + off[0]
		checkY := n.gridY + off[1]
		if g.inBounds(checkX, checkY) {
			dst = append(dst, &g.nodes[checkX*g.sizeY+checkY])
		}
	}
	return dst
}

// Neighbors returns up to 8 surrounding cells in a fixed order.
func (g *Grid) Neighbors(n *Node) []*Node {
	return g.AppendNeighbors(make([]*Node, 0, len(neighborOffsets)), n)
}
