package grid

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/milk9111/gridpath/logger"
	"github.com/ungerik/go3d/vec3"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

func fiveByFive(occ Occupancy) *Grid {
	return Build(Config{WorldSize: [2]float32{5, 5}, NodeRadius: 0.5}, occ)
}

func TestBuildSizes(t *testing.T) {
	cases := []struct {
		name         string
		cfg          Config
		wantX, wantY int
	}{
		{"five_by_five", Config{WorldSize: [2]float32{5, 5}, NodeRadius: 0.5}, 5, 5},
		{"rect", Config{WorldSize: [2]float32{30, 10}, NodeRadius: 1}, 15, 5},
		{"rounds_down", Config{WorldSize: [2]float32{5.4, 5}, NodeRadius: 0.5}, 5, 5},
		{"rounds_up", Config{WorldSize: [2]float32{5.6, 5}, NodeRadius: 0.5}, 6, 5},
		{"smaller_than_cell", Config{WorldSize: [2]float32{0.4, 5}, NodeRadius: 0.5}, 0, 0},
		{"zero_radius", Config{WorldSize: [2]float32{5, 5}, NodeRadius: 0}, 0, 0},
		{"negative_size", Config{WorldSize: [2]float32{-5, 5}, NodeRadius: 0.5}, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := Build(c.cfg, nil)
			x, y := g.Size()
			if x != c.wantX || y != c.wantY {
				t.Fatalf("Size() = (%d,%d), want (%d,%d)", x, y, c.wantX, c.wantY)
			}
			if g.Len() != c.wantX*c.wantY {
				t.Fatalf("Len() = %d, want %d", g.Len(), c.wantX*c.wantY)
			}
		})
	}
}

func TestBuildPositionsAndCoordinates(t *testing.T) {
	g := Build(Config{Origin: vec3.T{10, 3, -4}, WorldSize: [2]float32{4, 2}, NodeRadius: 0.5}, nil)

	n, ok := g.Node(0, 0)
	if !ok {
		t.Fatalf("expected node (0,0)")
	}
	if want := (vec3.T{8.5, 3, -4.5}); n.Position() != want {
		t.Fatalf("node (0,0) position = %v, want %v", n.Position(), want)
	}

	n, _ = g.Node(3, 1)
	if want := (vec3.T{11.5, 3, -3.5}); n.Position() != want {
		t.Fatalf("node (3,1) position = %v, want %v", n.Position(), want)
	}

	for i, n := range g.Nodes() {
		if n.Index() != i {
			t.Fatalf("node %v has index %d, want %d", n, n.Index(), i)
		}
		again, _ := g.Node(n.GridX(), n.GridY())
		if again != n {
			t.Fatalf("Node(%d,%d) did not return the same node", n.GridX(), n.GridY())
		}
		if g.NodeAt(i) != n {
			t.Fatalf("NodeAt(%d) did not return the same node", i)
		}
	}
}

func TestBuildOccupancy(t *testing.T) {
	var radii []float32
	occ := OccupancyFunc(func(center vec3.T, radius float32) bool {
		radii = append(radii, radius)
		// wall along world x == 0, which is grid column 2
		return center[0] > -0.5 && center[0] < 0.5
	})

	g := fiveByFive(occ)
	if len(radii) != 25 {
		t.Fatalf("occupancy called %d times, want 25", len(radii))
	}
	for _, r := range radii {
		if r != 0.5 {
			t.Fatalf("occupancy radius = %v, want 0.5", r)
		}
	}
	for _, n := range g.Nodes() {
		want := n.GridX() != 2
		if n.Walkable() != want {
			t.Fatalf("node %v walkable = %v, want %v", n, n.Walkable(), want)
		}
	}
	if g.WalkableCount() != 20 {
		t.Fatalf("WalkableCount() = %d, want 20", g.WalkableCount())
	}
}

func TestNodeFromWorldPointErrors(t *testing.T) {
	var unbuilt *Grid
	if _, err := unbuilt.NodeFromWorldPoint(vec3.T{}); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("nil grid error = %v, want ErrNotBuilt", err)
	}

	empty := Build(Config{WorldSize: [2]float32{0.2, 5}, NodeRadius: 0.5}, nil)
	if _, err := empty.NodeFromWorldPoint(vec3.T{}); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("empty grid error = %v, want ErrEmptyGrid", err)
	}
}

func TestNodeFromWorldPoint(t *testing.T) {
	g := fiveByFive(nil)

	cases := []struct {
		name         string
		p            vec3.T
		wantX, wantY int
	}{
		{"center", vec3.T{0, 0, 0}, 2, 2},
		{"bottom_left_cell", vec3.T{-2, 0, -2}, 0, 0},
		{"top_right_cell", vec3.T{2, 0, 2}, 4, 4},
		{"height_ignored", vec3.T{0, 100, 0}, 2, 2},
		{"clamped_low", vec3.T{-50, 0, -50}, 0, 0},
		{"clamped_high", vec3.T{50, 0, 50}, 4, 4},
		{"clamped_mixed", vec3.T{50, 0, -50}, 4, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := g.NodeFromWorldPoint(c.p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.GridX() != c.wantX || n.GridY() != c.wantY {
				t.Fatalf("got %v, want (%d,%d)", n, c.wantX, c.wantY)
			}
		})
	}
}

func TestNodeFromWorldPointCentersAndIdentity(t *testing.T) {
	sizes := []Config{
		{WorldSize: [2]float32{5, 5}, NodeRadius: 0.5},
		{Origin: vec3.T{3, 0, 7}, WorldSize: [2]float32{12, 8}, NodeRadius: 0.5},
		{WorldSize: [2]float32{40, 40}, NodeRadius: 1},
	}
	for _, cfg := range sizes {
		g := Build(cfg, nil)
		for _, n := range g.Nodes() {
			first, err := g.NodeFromWorldPoint(n.Position())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, _ := g.NodeFromWorldPoint(n.Position())
			if first != n || second != n {
				t.Fatalf("center of %v resolved to %v then %v", n, first, second)
			}
		}
	}
}

func TestNeighbors(t *testing.T) {
	g := fiveByFive(nil)

	cases := []struct {
		x, y int
		want int
	}{
		{0, 0, 3},
		{4, 4, 3},
		{0, 2, 5},
		{2, 4, 5},
		{2, 2, 8},
	}

	for _, c := range cases {
		n, _ := g.Node(c.x, c.y)
		got := g.Neighbors(n)
		if len(got) != c.want {
			t.Fatalf("Neighbors(%v) returned %d nodes, want %d", n, len(got), c.want)
		}
		seen := map[*Node]bool{}
		for _, nb := range got {
			if nb == n {
				t.Fatalf("Neighbors(%v) returned the node itself", n)
			}
			if seen[nb] {
				t.Fatalf("Neighbors(%v) returned %v twice", n, nb)
			}
			seen[nb] = true
			dx := nb.GridX() - n.GridX()
			dy := nb.GridY() - n.GridY()
			if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
				t.Fatalf("neighbor %v of %v is not adjacent", nb, n)
			}
			if _, ok := g.Node(nb.GridX(), nb.GridY()); !ok {
				t.Fatalf("neighbor %v out of bounds", nb)
			}
		}
	}
}

func TestNeighborsOrderIsFixed(t *testing.T) {
	g := fiveByFive(nil)
	n, _ := g.Node(2, 2)

	want := [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}
	got := g.Neighbors(n)
	for i, nb := range got {
		if nb.GridX() != want[i][0] || nb.GridY() != want[i][1] {
			t.Fatalf("neighbor %d = %v, want (%d,%d)", i, nb, want[i][0], want[i][1])
		}
	}
}

func TestNeighborsIncludesUnwalkable(t *testing.T) {
	g := fiveByFive(OccupancyFunc(func(vec3.T, float32) bool { return true }))
	n, _ := g.Node(2, 2)
	if len(g.Neighbors(n)) != 8 {
		t.Fatalf("expected all 8 neighbors regardless of walkability")
	}
}

func TestAppendNeighborsReusesBuffer(t *testing.T) {
	g := fiveByFive(nil)
	n, _ := g.Node(1, 1)
	buf := make([]*Node, 0, 8)
	buf = g.AppendNeighbors(buf[:0], n)
	if len(buf) != 8 || cap(buf) != 8 {
		t.Fatalf("expected 8 neighbors in the caller buffer, got len=%d cap=%d", len(buf), cap(buf))
	}
}
