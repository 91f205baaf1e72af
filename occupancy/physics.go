package occupancy

import (
	"fmt"
	"math/bits"

	"github.com/jakecoffman/cp"
	"github.com/ungerik/go3d/vec3"
)

// Space holds static obstacle shapes in a chipmunk space. World X maps to
// chipmunk X and world Z maps to chipmunk Y.
type Space struct {
	space  *cp.Space
	layers map[string]uint
	mask   uint
	shapes int
}

// NewSpace creates an empty space whose unwalkable mask covers every layer.
func NewSpace() *Space {
	return &Space{
		space:  cp.NewSpace(),
		layers: make(map[string]uint),
		mask:   cp.ALL_CATEGORIES,
	}
}

// CPSpace returns the underlying chipmunk space.
func (s *Space) CPSpace() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Layer returns the category bit for name, assigning the next free bit the
// first time a name is seen.
func (s *Space) Layer(name string) (uint, error) {
	if bit, ok := s.layers[name]; ok {
		return bit, nil
	}
	if len(s.layers) >= bits.UintSize {
		return 0, fmt.Errorf("occupancy: too many layers, cannot add %q", name)
	}
	bit := uint(1) << uint(len(s.layers))
	s.layers[name] = bit
	return bit, nil
}

// SetUnwalkableMask restricts Occupied to shapes on the named layers.
// No names restores the default of every layer.
func (s *Space) SetUnwalkableMask(names ...string) error {
	if len(names) == 0 {
		s.mask = cp.ALL_CATEGORIES
		return nil
	}
	var mask uint
	for _, name := range names {
		bit, err := s.Layer(name)
		if err != nil {
			return err
		}
		mask |= bit
	}
	s.mask = mask
	return nil
}

// UnwalkableMask returns the category bits Occupied tests against.
func (s *Space) UnwalkableMask() uint {
	return s.mask
}

// AddBox adds an axis-aligned box centered on center with the given X/Z size.
func (s *Space) AddBox(layer string, center vec3.T, size [2]float32) error {
	if !(size[0] > 0) || !(size[1] > 0) {
		return fmt.Errorf("occupancy: box size must be positive, got %v", size)
	}
	hw := float64(size[0]) / 2
	hd := float64(size[1]) / 2
	bb := cp.BB{
		L: float64(center[0]) - hw,
		B: float64(center[2]) - hd,
		R: float64(center[0]) + hw,
		T: float64(center[2]) + hd,
	}
	return s.add(layer, cp.NewBox2(s.space.StaticBody, bb, 0))
}

// AddCircle adds a circle (a cylinder in world space) around center.
func (s *Space) AddCircle(layer string, center vec3.T, radius float32) error {
	if !(radius > 0) {
		return fmt.Errorf("occupancy: circle radius must be positive, got %v", radius)
	}
	return s.add(layer, cp.NewCircle(s.space.StaticBody, float64(radius), planar(center)))
}

// AddSegment adds a thick line between a and b.
func (s *Space) AddSegment(layer string, a, b vec3.T, thickness float32) error {
	if thickness < 0 {
		return fmt.Errorf("occupancy: segment thickness must not be negative, got %v", thickness)
	}
	return s.add(layer, cp.NewSegment(s.space.StaticBody, planar(a), planar(b), float64(thickness)))
}

func (s *Space) add(layer string, shape *cp.Shape) error {
	bit, err := s.Layer(layer)
	if err != nil {
		return err
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, bit, cp.ALL_CATEGORIES))
	s.space.AddShape(shape)
	s.shapes++
	return nil
}

// Len is the number of shapes added.
func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return s.shapes
}

// Occupied reports whether a shape on an unwalkable layer lies closer than
// radius to center.
func (s *Space) Occupied(center vec3.T, radius float32) bool {
	if s == nil || s.shapes == 0 {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, s.mask)
	info := s.space.PointQueryNearest(planar(center), float64(radius), filter)
	return info != nil && info.Shape != nil
}

func planar(p vec3.T) cp.Vector {
	return cp.Vector{X: float64(p[0]), Y: float64(p[2])}
}
