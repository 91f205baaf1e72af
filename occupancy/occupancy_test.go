package occupancy

import (
	"io"
	"os"
	"testing"

	"github.com/milk9111/gridpath/grid"
	"github.com/milk9111/gridpath/logger"
	"github.com/ungerik/go3d/vec3"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSpaceOccupied(t *testing.T) {
	s := NewSpace()
	if s.Occupied(vec3.T{}, 10) {
		t.Fatalf("empty space should never be occupied")
	}
	if err := s.AddBox("walls", vec3.T{0, 0, 0}, [2]float32{1, 5}); err != nil {
		t.Fatalf("AddBox: %v", err)
	}
	if err := s.AddCircle("water", vec3.T{5, 0, 5}, 1); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	if err := s.AddSegment("walls", vec3.T{-10, 0, 10}, vec3.T{10, 0, 10}, 0.1); err != nil {
		t.Fatalf("AddSegment: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	cases := []struct {
		name   string
		center vec3.T
		radius float32
		want   bool
	}{
		{"inside_box", vec3.T{0, 0, 0}, 0.5, true},
		{"inside_box_zero_radius", vec3.T{0.2, 0, 2}, 0, true},
		{"height_ignored", vec3.T{0, 50, 0}, 0.5, true},
		{"overlapping_box_edge", vec3.T{0.8, 0, 0}, 0.5, true},
		{"clear_of_box", vec3.T{1.5, 0, 0}, 0.5, false},
		{"inside_circle", vec3.T{5, 0, 5}, 0.1, true},
		{"near_circle", vec3.T{6.3, 0, 5}, 0.5, true},
		{"clear_of_circle", vec3.T{7, 0, 5}, 0.5, false},
		{"on_segment", vec3.T{3, 0, 10}, 0.1, true},
		{"clear_of_segment", vec3.T{3, 0, 8}, 0.5, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.Occupied(c.center, c.radius); got != c.want {
				t.Fatalf("Occupied(%v, %v) = %v, want %v", c.center, c.radius, got, c.want)
			}
		})
	}
}

func TestSpaceUnwalkableMask(t *testing.T) {
	s := NewSpace()
	if err := s.AddBox("walls", vec3.T{0, 0, 0}, [2]float32{1, 1}); err != nil {
		t.Fatalf("AddBox: %v", err)
	}
	if err := s.AddBox("grass", vec3.T{5, 0, 0}, [2]float32{1, 1}); err != nil {
		t.Fatalf("AddBox: %v", err)
	}

	if err := s.SetUnwalkableMask("walls"); err != nil {
		t.Fatalf("SetUnwalkableMask: %v", err)
	}
	if !s.Occupied(vec3.T{0, 0, 0}, 0.25) {
		t.Fatalf("walls should block")
	}
	if s.Occupied(vec3.T{5, 0, 0}, 0.25) {
		t.Fatalf("grass is not in the unwalkable mask")
	}

	if err := s.SetUnwalkableMask(); err != nil {
		t.Fatalf("SetUnwalkableMask: %v", err)
	}
	if !s.Occupied(vec3.T{5, 0, 0}, 0.25) {
		t.Fatalf("empty mask should restore every layer")
	}

	wallBit, _ := s.Layer("walls")
	grassBit, _ := s.Layer("grass")
	if wallBit == grassBit || wallBit == 0 || grassBit == 0 {
		t.Fatalf("layers should get distinct non-zero bits, got %b and %b", wallBit, grassBit)
	}
}

func TestSpaceRejectsBadShapes(t *testing.T) {
	s := NewSpace()
	if err := s.AddBox("walls", vec3.T{}, [2]float32{0, 1}); err == nil {
		t.Fatalf("expected error for zero-width box")
	}
	if err := s.AddCircle("walls", vec3.T{}, -1); err == nil {
		t.Fatalf("expected error for negative radius")
	}
	if err := s.AddSegment("walls", vec3.T{}, vec3.T{1, 0, 0}, -1); err == nil {
		t.Fatalf("expected error for negative thickness")
	}
	if s.Len() != 0 {
		t.Fatalf("rejected shapes must not be added")
	}
}

func TestSpaceDrivesGrid(t *testing.T) {
	s := NewSpace()
	// full-height wall over grid column 2 of a 5x5 unit grid
	if err := s.AddBox("walls", vec3.T{0, 0, 0}, [2]float32{1, 5}); err != nil {
		t.Fatalf("AddBox: %v", err)
	}
	g := grid.Build(grid.Config{WorldSize: [2]float32{5, 5}, NodeRadius: 0.5}, s)
	for _, n := range g.Nodes() {
		want := n.GridX() != 2
		if n.Walkable() != want {
			t.Fatalf("node %v walkable = %v, want %v", n, n.Walkable(), want)
		}
	}
}

func TestBitmap(t *testing.T) {
	b, err := ParseBitmap(vec3.T{}, [2]float32{4, 2}, []string{
		"#...",
		"..#.",
	})
	if err != nil {
		t.Fatalf("ParseBitmap: %v", err)
	}
	if c, r := b.Size(); c != 4 || r != 2 {
		t.Fatalf("Size() = (%d,%d), want (4,2)", c, r)
	}
	if !b.Blocked(0, 1) || !b.Blocked(2, 0) || b.Blocked(0, 0) || b.Blocked(9, 9) {
		t.Fatalf("Blocked reports the wrong cells")
	}

	cases := []struct {
		name   string
		center vec3.T
		radius float32
		want   bool
	}{
		{"top_left_cell", vec3.T{-1.5, 0, 0.5}, 0.5, true},
		{"bottom_left_cell", vec3.T{-1.5, 0, -0.5}, 0.5, false},
		{"bottom_third_cell", vec3.T{0.5, 0, -0.5}, 0.5, true},
		{"touching_only", vec3.T{1.5, 0, -0.5}, 0.5, false},
		{"overlapping", vec3.T{1.4, 0, -0.5}, 0.5, true},
		{"outside_world", vec3.T{10, 0, 10}, 0.5, false},
		{"zero_radius_inside", vec3.T{-1.9, 0, 0.9}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := b.Occupied(c.center, c.radius); got != c.want {
				t.Fatalf("Occupied(%v, %v) = %v, want %v", c.center, c.radius, got, c.want)
			}
		})
	}
}

func TestParseBitmapErrors(t *testing.T) {
	cases := []struct {
		name string
		size [2]float32
		rows []string
	}{
		{"no_rows", [2]float32{1, 1}, nil},
		{"empty_row", [2]float32{1, 1}, []string{""}},
		{"ragged", [2]float32{1, 1}, []string{"..", "."}},
		{"bad_char", [2]float32{1, 1}, []string{".x"}},
		{"bad_size", [2]float32{0, 1}, []string{".."}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseBitmap(vec3.T{}, c.size, c.rows); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestScript(t *testing.T) {
	s, err := NewScript("ring", []byte(`
math := import("math")
is_occupied := func(x, y, z, radius) {
	d := math.sqrt(x*x + z*z)
	return d > 2 - radius && d < 3 + radius
}
`))
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}

	cases := []struct {
		center vec3.T
		want   bool
	}{
		{vec3.T{0, 0, 0}, false},
		{vec3.T{2.5, 0, 0}, true},
		{vec3.T{0, 0, -2.5}, true},
		{vec3.T{5, 0, 0}, false},
	}
	for _, c := range cases {
		if got := s.Occupied(c.center, 0.25); got != c.want {
			t.Fatalf("Occupied(%v) = %v, want %v", c.center, got, c.want)
		}
	}
}

func TestScriptErrors(t *testing.T) {
	if _, err := NewScript("missing", []byte(`x := 1`)); err == nil {
		t.Fatalf("expected compile error when is_occupied is missing")
	}
	if _, err := NewScript("syntax", []byte(`is_occupied := func(`)); err == nil {
		t.Fatalf("expected compile error for bad syntax")
	}

	s, err := NewScript("runtime", []byte(`
is_occupied := func(x, y, z, radius) {
	return 1 / int(x) > 0
}
`))
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	if !s.Occupied(vec3.T{}, 0.5) {
		t.Fatalf("a failing script should count as occupied")
	}
	// the script stays usable after a fault
	if s.Occupied(vec3.T{-1, 0, 0}, 0.5) {
		t.Fatalf("1 / -1 > 0 is false, cell should be free")
	}
	if !s.Occupied(vec3.T{1, 0, 0}, 0.5) {
		t.Fatalf("1 / 1 > 0 is true, cell should be occupied")
	}
}

func TestScriptFaultDuringGridBuild(t *testing.T) {
	s, err := NewScript("zero", []byte(`
is_occupied := func(x, y, z, radius) {
	return 1 / int(x) > 0
}
`))
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	// 3x1 unit grid with node centers at x = -1, 0, 1
	g := grid.Build(grid.Config{WorldSize: [2]float32{3, 1}, NodeRadius: 0.5}, s)
	want := []bool{true, false, false}
	for x, w := range want {
		n, _ := g.Node(x, 0)
		if n.Walkable() != w {
			t.Fatalf("node %v walkable = %v, want %v", n, n.Walkable(), w)
		}
	}
}

func TestAny(t *testing.T) {
	left := grid.OccupancyFunc(func(c vec3.T, _ float32) bool { return c[0] < 0 })
	top := grid.OccupancyFunc(func(c vec3.T, _ float32) bool { return c[2] > 0 })
	occ := Any(left, nil, top)

	cases := []struct {
		center vec3.T
		want   bool
	}{
		{vec3.T{-1, 0, -1}, true},
		{vec3.T{1, 0, 1}, true},
		{vec3.T{1, 0, -1}, false},
	}
	for _, c := range cases {
		if got := occ.Occupied(c.center, 0); got != c.want {
			t.Fatalf("Occupied(%v) = %v, want %v", c.center, got, c.want)
		}
	}
	if Any().Occupied(vec3.T{}, 1) {
		t.Fatalf("empty Any should never be occupied")
	}
}
