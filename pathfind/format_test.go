package pathfind

import (
	"testing"
)

func TestRenderASCII(t *testing.T) {
	g := gridFromRows(
		"...",
		".#.",
		"...",
	)
	start := cell(t, g, 0, 0)
	target := cell(t, g, 2, 2)
	path, err := FindPath(g, at(t, g, 0, 0), at(t, g, 2, 2))
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}

	got := RenderASCII(g, start, target, path)
	// the two cheapest routes go around the pillar on either side
	want1 := ".*T\n*#.\nS..\n"
	want2 := "..T\n.#*\nS*.\n"
	switch got {
	case want1, want2:
	default:
		t.Fatalf("RenderASCII =\n%s", got)
	}
}

func TestFormatPath(t *testing.T) {
	g := gridFromRows("...")
	path, err := FindPath(g, at(t, g, 0, 0), at(t, g, 2, 0))
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if got, want := FormatPath(path), "0 0 0\n1 0 0\n"; got != want {
		t.Fatalf("FormatPath = %q, want %q", got, want)
	}
	if FormatPath(nil) != "" {
		t.Fatalf("empty path should format to an empty string")
	}
}
