package grid

import (
	"fmt"

	"github.com/ungerik/go3d/vec3"
)

// Node is a single grid cell. Every field is fixed when the grid is built;
// search bookkeeping lives with the search, not on the node.
type Node struct {
	walkable bool
	position vec3.T
	gridX    int
	gridY    int
	index    int
}

// Walkable reports whether the occupancy test found the cell free.
func (n *Node) Walkable() bool {
	return n.walkable
}

// Position returns the world-space center of the cell.
func (n *Node) Position() vec3.T {
	return n.position
}

func (n *Node) GridX() int {
	return n.gridX
}

func (n *Node) GridY() int {
	return n.gridY
}

// Index is the node's offset in the grid's flat storage.
func (n *Node) Index() int {
	return n.index
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("(%d,%d)", n.gridX, n.gridY)
}
