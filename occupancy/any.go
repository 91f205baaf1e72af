package occupancy

import (
	"github.com/milk9111/gridpath/grid"
	"github.com/ungerik/go3d/vec3"
)

type anyOf []grid.Occupancy

// Any combines predicates; a cell is occupied if any of them says so.
// Nil predicates are skipped.
func Any(preds ...grid.Occupancy) grid.Occupancy {
	out := make(anyOf, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (a anyOf) Occupied(center vec3.T, radius float32) bool {
	for _, p := range a {
		if p.Occupied(center, radius) {
			return true
		}
	}
	return false
}
