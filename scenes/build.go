package scenes

import (
	"fmt"

	"github.com/milk9111/gridpath/grid"
	"github.com/milk9111/gridpath/logger"
	"github.com/milk9111/gridpath/occupancy"
	"github.com/sirupsen/logrus"
	"github.com/ungerik/go3d/vec3"
)

// World is a scene turned into a grid plus the occupancy sources that
// marked it.
type World struct {
	Scene  *Scene
	Grid   *grid.Grid
	Space  *occupancy.Space
	Layout *occupancy.Bitmap
	Script *occupancy.Script
}

func (s *Scene) GridConfig() grid.Config {
	return grid.Config{
		Origin:     s.Grid.Origin,
		WorldSize:  s.Grid.WorldSize,
		NodeRadius: s.Grid.NodeRadius,
	}
}

// Space builds the obstacle space. It is never nil.
func (s *Scene) Space() (*occupancy.Space, error) {
	space := occupancy.NewSpace()
	y := s.Grid.Origin[1]
	for i, o := range s.Obstacles {
		var err error
		switch o.Kind {
		case KindBox:
			err = space.AddBox(o.Layer, vec3.T{o.Center[0], y, o.Center[1]}, o.Size)
		case KindCircle:
			err = space.AddCircle(o.Layer, vec3.T{o.Center[0], y, o.Center[1]}, o.Radius)
		case KindSegment:
			err = space.AddSegment(o.Layer, vec3.T{o.A[0], y, o.A[1]}, vec3.T{o.B[0], y, o.B[1]}, o.Radius)
		default:
			err = fmt.Errorf("%w: unknown kind %q", ErrInvalidScene, o.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("scenes: %s: obstacle %d: %w", s.Name, i, err)
		}
	}
	if err := space.SetUnwalkableMask(s.UnwalkableMask...); err != nil {
		return nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
	}
	return space, nil
}

// Build assembles every occupancy source the scene declares and builds the
// grid from them.
func (s *Scene) Build() (*World, error) {
	w, err := s.sources()
	if err != nil {
		return nil, err
	}
	w.Grid = grid.Build(s.GridConfig(), w.occupancy())

	sx, sy := w.Grid.Size()
	logger.Log.WithFields(logrus.Fields{
		"scene":     s.Name,
		"size_x":    sx,
		"size_y":    sy,
		"walkable":  w.Grid.WalkableCount(),
		"obstacles": w.Space.Len(),
	}).Debug("scenes: built grid")
	return w, nil
}

func (s *Scene) sources() (*World, error) {
	w := &World{Scene: s}

	space, err := s.Space()
	if err != nil {
		return nil, err
	}
	w.Space = space

	if len(s.Layout) > 0 {
		w.Layout, err = occupancy.ParseBitmap(s.Grid.Origin, s.Grid.WorldSize, s.Layout)
		if err != nil {
			return nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
		}
	}

	if s.Script != "" {
		src, err := LoadScript(s.Script)
		if err != nil {
			return nil, fmt.Errorf("scenes: %s: load script %s: %w", s.Name, s.Script, err)
		}
		w.Script, err = occupancy.NewScript(s.Script, src)
		if err != nil {
			return nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
		}
	}

	return w, nil
}

func (w *World) occupancy() grid.Occupancy {
	var preds []grid.Occupancy
	if w.Space.Len() > 0 {
		preds = append(preds, w.Space)
	}
	if w.Layout != nil {
		preds = append(preds, w.Layout)
	}
	if w.Script != nil {
		preds = append(preds, w.Script)
	}
	return occupancy.Any(preds...)
}

// Occupancy combines the scene's obstacles, layout and script.
func (s *Scene) Occupancy() (grid.Occupancy, error) {
	w, err := s.sources()
	if err != nil {
		return nil, err
	}
	return w.occupancy(), nil
}

func (s *Scene) BuildGrid() (*grid.Grid, error) {
	w, err := s.Build()
	if err != nil {
		return nil, err
	}
	return w.Grid, nil
}
