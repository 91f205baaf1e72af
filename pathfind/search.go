package pathfind

import (
	"container/heap"

	"github.com/milk9111/gridpath/grid"
)

// Score is the search bookkeeping of one node at some point of a run.
type Score struct {
	G      int
	H      int
	Parent *grid.Node
}

// F is G + H, the priority used to pick the next node to expand.
func (s Score) F() int {
	return s.G + s.H
}

// search holds the state of one A* run. It is never shared between runs.
type search struct {
	grid   *grid.Grid
	start  *grid.Node
	target *grid.Node

	records   []record
	open      openSet
	seq       uint64
	neighbors []*grid.Node

	current  *grid.Node
	expanded int
	done     bool
	found    bool
}

func newSearch(g *grid.Grid, start, target *grid.Node) *search {
	records := make([]record, g.Len())
	for i := range records {
		records[i].parent = -1
		records[i].heapIndex = -1
	}

	s := &search{
		grid:      g,
		start:     start,
		target:    target,
		records:   records,
		open:      openSet{items: make([]int, 0, 64), records: records},
		neighbors: make([]*grid.Node, 0, 8),
	}

	rec := &s.records[start.Index()]
	rec.g = 0
	rec.h = Distance(start, target)
	s.push(start.Index())
	return s
}

func (s *search) push(idx int) {
	rec := &s.records[idx]
	rec.state = stateOpen
	rec.seq = s.seq
	s.seq++
	heap.Push(&s.open, idx)
}

// step expands one node and reports whether the run has finished.
func (s *search) step() bool {
	if s.done {
		return true
	}
	if s.open.Len() == 0 {
		s.done = true
		s.current = nil
		return true
	}

	idx := heap.Pop(&s.open).(int)
	rec := &s.records[idx]
	rec.state = stateClosed
	current := s.grid.NodeAt(idx)
	s.current = current
	s.expanded++

	if current == s.target {
		s.done = true
		s.found = true
		return true
	}

	s.neighbors = s.grid.AppendNeighbors(s.neighbors[:0], current)
	for _, neighbor := range s.neighbors {
		nrec := &s.records[neighbor.Index()]
		if !neighbor.Walkable() || nrec.state == stateClosed {
			continue
		}

		tentativeG := rec.g + Distance(current, neighbor)
		if tentativeG < nrec.g || nrec.state != stateOpen {
			nrec.g = tentativeG
			nrec.h = Distance(neighbor, s.target)
			nrec.parent = idx
			if nrec.state != stateOpen {
				s.push(neighbor.Index())
			} else {
				heap.Fix(&s.open, nrec.heapIndex)
			}
		}
	}
	return false
}

// path walks parent links back from the target. The start node is excluded,
// so start == target yields an empty path.
func (s *search) path() []*grid.Node {
	if !s.found {
		return nil
	}
	path := make([]*grid.Node, 0, 16)
	for idx := s.target.Index(); idx != s.start.Index(); idx = s.records[idx].parent {
		path = append(path, s.grid.NodeAt(idx))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *search) score(n *grid.Node) (Score, bool) {
	if n == nil || n.Index() >= len(s.records) || s.grid.NodeAt(n.Index()) != n {
		return Score{}, false
	}
	rec := &s.records[n.Index()]
	if rec.state == stateUnseen {
		return Score{}, false
	}
	return Score{G: rec.g, H: rec.h, Parent: s.grid.NodeAt(rec.parent)}, true
}

func (s *search) result() Result {
	res := Result{
		Path:     s.path(),
		Expanded: s.expanded,
		Found:    s.found,
	}
	if s.found {
		res.Cost = s.records[s.target.Index()].g
	}
	return res
}
