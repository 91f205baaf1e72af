package pathfind

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/gridpath/grid"
	"github.com/milk9111/gridpath/logger"
	"github.com/sirupsen/logrus"
	"github.com/ungerik/go3d/vec3"
)

// ErrExpansionLimit is returned when a search expands more nodes than
// WithMaxExpansions allows.
var ErrExpansionLimit = errors.New("pathfind: expansion limit reached")

// Result is the outcome of a search. An empty Path with Found false means
// the target is unreachable; an empty Path with Found true means the start
// and target share a cell.
type Result struct {
	Path     []*grid.Node
	Cost     int
	Expanded int
	Found    bool
}

// Options tunes a search.
type Options struct {
	// MaxExpansions caps expanded nodes; zero means no limit.
	MaxExpansions int
	// ContextCheckInterval is how many expansions run between ctx checks.
	ContextCheckInterval int
}

// Option modifies Options.
type Option func(*Options)

func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

func WithContextCheckInterval(n int) Option {
	return func(o *Options) { o.ContextCheckInterval = n }
}

func buildOptions(options []Option) Options {
	opts := Options{ContextCheckInterval: 256}
	for _, option := range options {
		option(&opts)
	}
	if opts.ContextCheckInterval <= 0 {
		opts.ContextCheckInterval = 1
	}
	return opts
}

// FindPath returns the cells from (excluding) the start to (including) the
// target. The only error is a start or target that cannot be resolved on g.
func FindPath(g *grid.Grid, startPos, targetPos vec3.T) ([]*grid.Node, error) {
	res, err := Search(context.Background(), g, startPos, targetPos)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search runs A* between two world positions until the target is reached,
// the open set is exhausted, ctx is done, or the expansion limit is hit.
func Search(ctx context.Context, g *grid.Grid, startPos, targetPos vec3.T, options ...Option) (Result, error) {
	opts := buildOptions(options)

	s, err := resolve(g, startPos, targetPos)
	if err != nil {
		return Result{}, err
	}

	for i := 1; !s.step(); i++ {
		if opts.MaxExpansions > 0 && s.expanded >= opts.MaxExpansions {
			return Result{Expanded: s.expanded}, ErrExpansionLimit
		}
		if i%opts.ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{Expanded: s.expanded}, err
			}
		}
	}

	res := s.result()
	logger.Log.WithFields(logrus.Fields{
		"start":    s.start.String(),
		"target":   s.target.String(),
		"found":    res.Found,
		"steps":    len(res.Path),
		"cost":     res.Cost,
		"expanded": res.Expanded,
	}).Debug("pathfind: search finished")
	return res, nil
}

func resolve(g *grid.Grid, startPos, targetPos vec3.T) (*search, error) {
	start, err := g.NodeFromWorldPoint(startPos)
	if err != nil {
		return nil, fmt.Errorf("pathfind: resolve start: %w", err)
	}
	target, err := g.NodeFromWorldPoint(targetPos)
	if err != nil {
		return nil, fmt.Errorf("pathfind: resolve target: %w", err)
	}

	if !start.Walkable() {
		logger.Log.WithField("start", start.String()).Debug("pathfind: start cell is not walkable")
	}
	if !target.Walkable() && start != target {
		logger.Log.WithField("target", target.String()).Debug("pathfind: target cell is not walkable, no path can reach it")
	}

	return newSearch(g, start, target), nil
}

// Waypoints converts a path to the world positions of its cells.
func Waypoints(path []*grid.Node) []vec3.T {
	if len(path) == 0 {
		return nil
	}
	out := make([]vec3.T, 0, len(path))
	for _, n := range path {
		out = append(out, n.Position())
	}
	return out
}
