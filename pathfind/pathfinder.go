package pathfind

import (
	"context"
	"sync"

	"github.com/milk9111/gridpath/grid"
	"github.com/ungerik/go3d/vec3"
)

// Pathfinder owns the current grid and remembers the most recent path found
// on it, for drawing and movement code to read.
type Pathfinder struct {
	mu      sync.RWMutex
	grid    *grid.Grid
	path    []*grid.Node
	options []Option
}

// New creates a Pathfinder over g. The options apply to every search.
func New(g *grid.Grid, options ...Option) *Pathfinder {
	return &Pathfinder{
		grid:    g,
		options: append([]Option(nil), options...),
	}
}

// SetGrid swaps in a rebuilt grid and drops the stored path, whose nodes
// belong to the old one.
func (p *Pathfinder) SetGrid(g *grid.Grid) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grid = g
	p.path = nil
}

// SetOptions replaces the options applied to later searches.
func (p *Pathfinder) SetOptions(options ...Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.options = append([]Option(nil), options...)
}

func (p *Pathfinder) Grid() *grid.Grid {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.grid
}

// FindPath searches the current grid and replaces the stored path with the
// result. On error the stored path is left untouched.
func (p *Pathfinder) FindPath(ctx context.Context, startPos, targetPos vec3.T) (Result, error) {
	p.mu.RLock()
	g, options := p.grid, p.options
	p.mu.RUnlock()

	res, err := Search(ctx, g, startPos, targetPos, options...)
	if err != nil {
		return res, err
	}

	p.mu.Lock()
	// a concurrent SetGrid wins over a search on the old grid
	if p.grid == g {
		p.path = res.Path
	}
	p.mu.Unlock()
	return res, nil
}

// Path returns a copy of the stored path.
func (p *Pathfinder) Path() []*grid.Node {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.path) == 0 {
		return nil
	}
	return append([]*grid.Node(nil), p.path...)
}

// Waypoints returns the world positions of the stored path.
func (p *Pathfinder) Waypoints() []vec3.T {
	return Waypoints(p.Path())
}

// OnPath reports whether n is part of the stored path.
func (p *Pathfinder) OnPath(n *grid.Node) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, pn := range p.path {
		if pn == n {
			return true
		}
	}
	return false
}
