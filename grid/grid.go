package grid

import (
	"errors"
	"math"

	"github.com/milk9111/gridpath/common"
	"github.com/milk9111/gridpath/logger"
	"github.com/sirupsen/logrus"
	"github.com/ungerik/go3d/vec3"
)

var (
	ErrNotBuilt  = errors.New("grid: not built")
	ErrEmptyGrid = errors.New("grid: zero size")
)

// Occupancy decides whether a circle of the given radius around center
// overlaps anything that blocks movement.
type Occupancy interface {
	Occupied(center vec3.T, radius float32) bool
}

// OccupancyFunc adapts a plain function to Occupancy.
type OccupancyFunc func(center vec3.T, radius float32) bool

func (f OccupancyFunc) Occupied(center vec3.T, radius float32) bool {
	return f(center, radius)
}

// Config describes the world area covered by a grid. The grid lies on the
// world X/Z plane; WorldSize[0] spans X and WorldSize[1] spans Z.
type Config struct {
	Origin     vec3.T
	WorldSize  [2]float32
	NodeRadius float32
}

// Grid is a fixed 2D array of nodes. It is immutable after Build, so any
// number of goroutines may query or search it at once.
type Grid struct {
	origin       vec3.T
	worldSize    [2]float32
	nodeRadius   float32
	nodeDiameter float32
	sizeX        int
	sizeY        int
	// column-major, index = x*sizeY + y
	nodes []Node
}

// Build lays out the grid and runs occ once per cell. A nil occ marks every
// cell walkable. Non-positive sizes produce an empty dimension.
func Build(cfg Config, occ Occupancy) *Grid {
	g := &Grid{
		origin:     cfg.Origin,
		worldSize:  cfg.WorldSize,
		nodeRadius: cfg.NodeRadius,
	}
	if cfg.NodeRadius > 0 {
		g.nodeDiameter = cfg.NodeRadius * 2
		g.sizeX = cellCount(cfg.WorldSize[0], g.nodeDiameter)
		g.sizeY = cellCount(cfg.WorldSize[1], g.nodeDiameter)
	}
	if g.sizeX == 0 || g.sizeY == 0 {
		g.sizeX, g.sizeY = 0, 0
		logger.Log.WithFields(logrus.Fields{
			"world_size":  cfg.WorldSize,
			"node_radius": cfg.NodeRadius,
		}).Warn("grid: degenerate configuration, grid is empty")
		return g
	}

	bottomLeft := vec3.T{
		cfg.Origin[0] - cfg.WorldSize[0]/2,
		cfg.Origin[1],
		cfg.Origin[2] - cfg.WorldSize[1]/2,
	}

	g.nodes = make([]Node, g.sizeX*g.sizeY)
	walkable := 0
	for x := 0; x < g.sizeX; x++ {
		for y := 0; y < g.sizeY; y++ {
			point := vec3.T{
				bottomLeft[0] + float32(x)*g.nodeDiameter + g.nodeRadius,
				bottomLeft[1],
				bottomLeft[2] + float32(y)*g.nodeDiameter + g.nodeRadius,
			}
			free := occ == nil || !occ.Occupied(point, g.nodeRadius)
			if free {
				walkable++
			}
			idx := x*g.sizeY + y
			g.nodes[idx] = Node{
				walkable: free,
				position: point,
				gridX:    x,
				gridY:    y,
				index:    idx,
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"size_x":   g.sizeX,
		"size_y":   g.sizeY,
		"walkable": walkable,
	}).Debug("grid: built")
	return g
}

func cellCount(extent, diameter float32) int {
	if !(extent > 0) || !(diameter > 0) {
		return 0
	}
	ratio := extent / diameter
	if math.IsInf(float64(ratio), 0) {
		return 0
	}
	return common.RoundToInt(ratio)
}

// Size returns the number of cells along X and along Y.
func (g *Grid) Size() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.sizeX, g.sizeY
}

// Len is the total number of nodes.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

func (g *Grid) Origin() vec3.T {
	return g.origin
}

func (g *Grid) WorldSize() [2]float32 {
	return g.worldSize
}

func (g *Grid) NodeRadius() float32 {
	return g.nodeRadius
}

func (g *Grid) NodeDiameter() float32 {
	return g.nodeDiameter
}

// Node returns the node at grid coordinates (x, y).
func (g *Grid) Node(x, y int) (*Node, bool) {
	if !g.inBounds(x, y) {
		return nil, false
	}
	return &g.nodes[x*g.sizeY+y], true
}

// NodeAt returns the node with the given Index, or nil.
func (g *Grid) NodeAt(index int) *Node {
	if g == nil || index < 0 || index >= len(g.nodes) {
		return nil
	}
	return &g.nodes[index]
}

// Nodes returns every node in index order. The slice is freshly allocated;
// the nodes are shared.
func (g *Grid) Nodes() []*Node {
	if g == nil {
		return nil
	}
	out := make([]*Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = &g.nodes[i]
	}
	return out
}

func (g *Grid) WalkableCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for i := range g.nodes {
		if g.nodes[i].walkable {
			n++
		}
	}
	return n
}

func (g *Grid) inBounds(x, y int) bool {
	return g != nil && x >= 0 && x < g.sizeX && y >= 0 && y < g.sizeY
}
