package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/vec3"
)

// pointFlag is a world position given as "x,z" or "x,y,z". When only two
// values are given the height stays at its previous value.
type pointFlag struct {
	p   vec3.T
	set bool
}

func (f *pointFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.p[0], f.p[1], f.p[2])
}

func (f *pointFlag) Set(s string) error {
	p, err := parsePoint(s, f.p[1])
	if err != nil {
		return err
	}
	f.p = p
	f.set = true
	return nil
}

func parsePoint(s string, y float32) (vec3.T, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return vec3.T{}, fmt.Errorf("point %q: want x,z or x,y,z", s)
	}
	vals := make([]float32, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return vec3.T{}, fmt.Errorf("point %q: %w", s, err)
		}
		vals[i] = float32(v)
	}
	if len(vals) == 2 {
		return vec3.T{vals[0], y, vals[1]}, nil
	}
	return vec3.T{vals[0], vals[1], vals[2]}, nil
}
