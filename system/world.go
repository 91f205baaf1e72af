package system

import (
	"context"
	"fmt"

	"github.com/milk9111/gridpath/logger"
	"github.com/milk9111/gridpath/pathfind"
	"github.com/milk9111/gridpath/scenes"
	"github.com/sirupsen/logrus"
)

// World owns scene loading, grid rebuilds and the pathfinding state that
// depends on them.
type World struct {
	SceneName   string
	Scene       *scenes.Scene
	Built       *scenes.World
	Pathfinder  *pathfind.Pathfinder
	Pathfinding *PathfindingSystem
}

// NewWorld creates a new world and loads the requested scene.
func NewWorld(sceneName string) (*World, error) {
	w := &World{}
	if err := w.Load(sceneName); err != nil {
		return nil, err
	}
	return w, nil
}

// Load loads a scene and resets the seeker and target to the scene's
// endpoints.
func (w *World) Load(sceneName string) error {
	if w == nil {
		return fmt.Errorf("system: world is nil")
	}
	scene, built, err := loadScene(sceneName)
	if err != nil {
		return err
	}

	w.SceneName = sceneName
	w.Scene = scene
	w.Built = built
	w.Pathfinder = pathfind.New(built.Grid, searchOptions(scene)...)
	w.Pathfinding = NewPathfindingSystem(w.Pathfinder, scene.RepathFrames)
	w.Pathfinding.SetSeeker(scene.Seeker)
	w.Pathfinding.SetTarget(scene.Target)
	return nil
}

// Reload rebuilds the grid from the scene file on disk, keeping the current
// seeker and target. On error the old grid stays in place.
func (w *World) Reload() error {
	if w == nil || w.Pathfinder == nil {
		return fmt.Errorf("system: world has no scene loaded")
	}
	scene, built, err := loadScene(w.SceneName)
	if err != nil {
		return err
	}
	w.Scene = scene
	w.Built = built
	w.Pathfinder.SetGrid(built.Grid)
	w.Pathfinder.SetOptions(searchOptions(scene)...)
	w.Pathfinding.RepathFrames = scene.RepathFrames
	w.Pathfinding.Invalidate()

	logger.Log.WithField("scene", w.SceneName).Info("system: scene reloaded")
	return nil
}

// Update advances the world one frame.
func (w *World) Update(ctx context.Context) error {
	if w == nil || w.Pathfinding == nil {
		return nil
	}
	_, err := w.Pathfinding.Update(ctx)
	return err
}

func searchOptions(scene *scenes.Scene) []pathfind.Option {
	if scene.MaxExpansions > 0 {
		return []pathfind.Option{pathfind.WithMaxExpansions(scene.MaxExpansions)}
	}
	return nil
}

func loadScene(name string) (*scenes.Scene, *scenes.World, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("system: scene name is empty")
	}
	scene, err := scenes.LoadScene(name)
	if err != nil {
		return nil, nil, err
	}
	built, err := scene.Build()
	if err != nil {
		return nil, nil, err
	}
	sx, sy := built.Grid.Size()
	logger.Log.WithFields(logrus.Fields{
		"scene":    scene.Name,
		"size_x":   sx,
		"size_y":   sy,
		"walkable": built.Grid.WalkableCount(),
	}).Info("system: scene loaded")
	return scene, built, nil
}
