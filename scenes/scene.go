package scenes

import (
	"errors"
	"fmt"

	"github.com/ungerik/go3d/vec3"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("scenes: invalid scene")

const (
	KindBox     = "box"
	KindCircle  = "circle"
	KindSegment = "segment"
)

// Scene is a pathfinding setup: the grid, what blocks it and the two
// endpoints a seeker moves between.
type Scene struct {
	Name           string         `yaml:"name"`
	Grid           GridSpec       `yaml:"grid"`
	UnwalkableMask []string       `yaml:"unwalkable_mask"`
	Obstacles      []ObstacleSpec `yaml:"obstacles"`
	Layout         []string       `yaml:"layout"`
	Script         string         `yaml:"script"`
	Seeker         vec3.T         `yaml:"seeker"`
	Target         vec3.T         `yaml:"target"`
	RepathFrames   int            `yaml:"repath_frames"`
	MaxExpansions  int            `yaml:"max_expansions"`
}

type GridSpec struct {
	Origin     vec3.T     `yaml:"origin"`
	WorldSize  [2]float32 `yaml:"world_size"`
	NodeRadius float32    `yaml:"node_radius"`
}

// ObstacleSpec is one static shape. Center, A and B are X/Z positions.
// Radius is the circle radius for circles and the half thickness for
// segments.
type ObstacleSpec struct {
	Kind   string     `yaml:"kind"`
	Layer  string     `yaml:"layer"`
	Center [2]float32 `yaml:"center"`
	Size   [2]float32 `yaml:"size"`
	Radius float32    `yaml:"radius"`
	A      [2]float32 `yaml:"a"`
	B      [2]float32 `yaml:"b"`
}

// LoadScene reads and validates the named scene.
func LoadScene(name string) (*Scene, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("scenes: load %s: %w", name, err)
	}
	return ParseScene(name, data)
}

// ParseScene decodes and validates a scene document. name is used for
// errors and as the scene name when the document has none.
func ParseScene(name string, data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("scenes: unmarshal %s: %w", name, err)
	}
	if scene.Name == "" {
		scene.Name = name
	}
	if scene.RepathFrames <= 0 {
		scene.RepathFrames = 1
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("scenes: %s: %w", name, err)
	}
	return &scene, nil
}

// Validate checks the scene for values the grid or the obstacle space would
// reject. Every error wraps ErrInvalidScene.
func (s *Scene) Validate() error {
	if !(s.Grid.NodeRadius > 0) {
		return fmt.Errorf("%w: node_radius must be positive, got %v", ErrInvalidScene, s.Grid.NodeRadius)
	}
	if !(s.Grid.WorldSize[0] > 0) || !(s.Grid.WorldSize[1] > 0) {
		return fmt.Errorf("%w: world_size must be positive, got %v", ErrInvalidScene, s.Grid.WorldSize)
	}
	if s.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions must not be negative", ErrInvalidScene)
	}

	layers := make(map[string]bool)
	for i, o := range s.Obstacles {
		if o.Layer == "" {
			return fmt.Errorf("%w: obstacle %d has no layer", ErrInvalidScene, i)
		}
		layers[o.Layer] = true
		switch o.Kind {
		case KindBox:
			if !(o.Size[0] > 0) || !(o.Size[1] > 0) {
				return fmt.Errorf("%w: obstacle %d: box size must be positive", ErrInvalidScene, i)
			}
		case KindCircle:
			if !(o.Radius > 0) {
				return fmt.Errorf("%w: obstacle %d: circle radius must be positive", ErrInvalidScene, i)
			}
		case KindSegment:
			if o.Radius < 0 {
				return fmt.Errorf("%w: obstacle %d: segment radius must not be negative", ErrInvalidScene, i)
			}
		default:
			return fmt.Errorf("%w: obstacle %d: unknown kind %q", ErrInvalidScene, i, o.Kind)
		}
	}
	for _, name := range s.UnwalkableMask {
		if !layers[name] {
			return fmt.Errorf("%w: unwalkable_mask names unknown layer %q", ErrInvalidScene, name)
		}
	}

	if len(s.Layout) > 0 {
		width := len(s.Layout[0])
		for i, row := range s.Layout {
			if len(row) != width || width == 0 {
				return fmt.Errorf("%w: layout row %d has %d columns, want %d", ErrInvalidScene, i, len(row), width)
			}
		}
	}
	return nil
}
