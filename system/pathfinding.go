package system

import (
	"context"

	"github.com/milk9111/gridpath/grid"
	"github.com/milk9111/gridpath/logger"
	"github.com/milk9111/gridpath/pathfind"
	"github.com/sirupsen/logrus"
	"github.com/ungerik/go3d/vec3"
)

const defaultPathRepathFrames = 15

// PathfindingSystem keeps a seeker's path to its target up to date. Call
// Update once per frame; it repaths every RepathFrames frames, or at once
// when either endpoint moves into another cell.
type PathfindingSystem struct {
	RepathFrames int

	pf     *pathfind.Pathfinder
	seeker vec3.T
	target vec3.T

	frameCounter int
	lastStart    int
	lastTarget   int
	dirty        bool

	result pathfind.Result
	err    error
}

func NewPathfindingSystem(pf *pathfind.Pathfinder, repathFrames int) *PathfindingSystem {
	if repathFrames <= 0 {
		repathFrames = defaultPathRepathFrames
	}
	return &PathfindingSystem{
		RepathFrames: repathFrames,
		pf:           pf,
		lastStart:    -1,
		lastTarget:   -1,
		dirty:        true,
	}
}

func (ps *PathfindingSystem) SetSeeker(p vec3.T) { ps.seeker = p }
func (ps *PathfindingSystem) SetTarget(p vec3.T) { ps.target = p }
func (ps *PathfindingSystem) Seeker() vec3.T     { return ps.seeker }
func (ps *PathfindingSystem) Target() vec3.T     { return ps.target }

// Invalidate forces a repath on the next Update, e.g. after the grid was
// rebuilt.
func (ps *PathfindingSystem) Invalidate() {
	ps.dirty = true
}

// Update advances one frame and reports whether a search ran.
func (ps *PathfindingSystem) Update(ctx context.Context) (bool, error) {
	if ps == nil || ps.pf == nil {
		return false, nil
	}
	g := ps.pf.Grid()
	start, err := g.NodeFromWorldPoint(ps.seeker)
	if err != nil {
		ps.err = err
		return false, err
	}
	goal, err := g.NodeFromWorldPoint(ps.target)
	if err != nil {
		ps.err = err
		return false, err
	}

	ps.frameCounter++
	moved := start.Index() != ps.lastStart || goal.Index() != ps.lastTarget
	if !ps.dirty && !moved && ps.frameCounter < ps.RepathFrames {
		return false, nil
	}

	res, err := ps.pf.FindPath(ctx, ps.seeker, ps.target)
	// a failed search waits for the next interval like a successful one
	ps.frameCounter = 0
	ps.lastStart = start.Index()
	ps.lastTarget = goal.Index()
	ps.dirty = false
	ps.err = err
	if err != nil {
		logger.Log.WithError(err).Warn("system: repath failed")
		return true, err
	}
	ps.result = res

	if moved {
		logger.Log.WithFields(logrus.Fields{
			"start":  start.String(),
			"target": goal.String(),
			"found":  res.Found,
			"cost":   res.Cost,
		}).Debug("system: endpoint changed cell, repathed")
	}
	return true, nil
}

// Result is the outcome of the last successful search.
func (ps *PathfindingSystem) Result() pathfind.Result { return ps.result }

// Err is the error from the last Update, if any.
func (ps *PathfindingSystem) Err() error { return ps.err }

func (ps *PathfindingSystem) Path() []*grid.Node {
	return ps.pf.Path()
}

// Waypoints returns the world positions of the current path.
func (ps *PathfindingSystem) Waypoints() []vec3.T {
	return ps.pf.Waypoints()
}
