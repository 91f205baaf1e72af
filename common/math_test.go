package common

import (
	"math"
	"testing"
)

func TestRoundToInt(t *testing.T) {
	cases := []struct {
		in   float32
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.6, 1},
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{-0.6, -1},
		{4.9999, 5},
	}
	for _, c := range cases {
		if got := RoundToInt(c.in); got != c.want {
			t.Fatalf("RoundToInt(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3, 1},
		{float32(math.NaN()), 0},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAbsInt(t *testing.T) {
	if AbsInt(-3) != 3 || AbsInt(3) != 3 || AbsInt(0) != 0 {
		t.Fatalf("AbsInt returned an unexpected value")
	}
}
