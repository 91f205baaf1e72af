package occupancy

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gridpath/logger"
	"github.com/sirupsen/logrus"
	"github.com/ungerik/go3d/vec3"
)

// A script defines is_occupied(x, y, z, radius) and returns a truthy value
// for blocked cells. The dispatch below is appended to every script.
const occupancyDispatchScript = `
__occupied := is_occupied(__x, __y, __z, __radius)
`

// Script evaluates a compiled tengo script per query. Queries are
// serialized; the compiled program is not safe for concurrent runs.
type Script struct {
	mu       sync.Mutex
	name     string
	compiled *tengo.Compiled
}

// NewScript compiles src. name is only used in errors and logs.
func NewScript(name string, src []byte) (*Script, error) {
	full := string(src) + "\n" + occupancyDispatchScript
	script := tengo.NewScript([]byte(full))
	for _, v := range []string{"__x", "__y", "__z", "__radius"} {
		if err := script.Add(v, 0.0); err != nil {
			return nil, fmt.Errorf("occupancy: script %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("occupancy: compile script %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// Occupied runs the script for one query. A failing run counts as occupied.
func (s *Script) Occupied(center vec3.T, radius float32) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	occupied, err := s.eval(center, radius)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"script": s.name,
			"center": center,
		}).WithError(err).Warn("occupancy: script failed, treating cell as occupied")
		return true
	}
	return occupied
}

// eval turns a panic inside the tengo VM into an error; some runtime
// faults, integer division by zero among them, panic instead of failing Run.
func (s *Script) eval(center vec3.T, radius float32) (occupied bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			occupied = false
			err = fmt.Errorf("occupancy: script %s panicked: %v", s.name, r)
		}
	}()

	values := map[string]float32{
		"__x":      center[0],
		"__y":      center[1],
		"__z":      center[2],
		"__radius": radius,
	}
	for name, v := range values {
		if err := s.compiled.Set(name, float64(v)); err != nil {
			return false, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return false, err
	}
	return s.compiled.Get("__occupied").Bool(), nil
}
