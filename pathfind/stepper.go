package pathfind

import (
	"github.com/milk9111/gridpath/grid"
	"github.com/ungerik/go3d/vec3"
)

// Snapshot is the state of a Stepper after one expansion.
type Snapshot struct {
	Current *grid.Node
	Open    []*grid.Node
	Closed  []*grid.Node
	Done    bool
	Found   bool
	Path    []*grid.Node
	Step    int
}

// Stepper runs the same search as Search, one expansion per Step.
type Stepper struct {
	search *search
}

// NewStepper resolves both endpoints and prepares a search without
// expanding anything.
func NewStepper(g *grid.Grid, startPos, targetPos vec3.T) (*Stepper, error) {
	s, err := resolve(g, startPos, targetPos)
	if err != nil {
		return nil, err
	}
	return &Stepper{search: s}, nil
}

// Step expands one node. Once the search has finished further calls return
// the final snapshot again.
func (st *Stepper) Step() Snapshot {
	st.search.step()
	return st.snapshot()
}

func (st *Stepper) Done() bool {
	return st.search.done
}

func (st *Stepper) Start() *grid.Node {
	return st.search.start
}

func (st *Stepper) Target() *grid.Node {
	return st.search.target
}

// Score returns the bookkeeping of n, if the search has reached it.
func (st *Stepper) Score(n *grid.Node) (Score, bool) {
	return st.search.score(n)
}

// Result is only meaningful once Done reports true.
func (st *Stepper) Result() Result {
	return st.search.result()
}

func (st *Stepper) snapshot() Snapshot {
	s := st.search
	snap := Snapshot{
		Current: s.current,
		Done:    s.done,
		Found:   s.found,
		Step:    s.expanded,
	}
	for i := range s.records {
		switch s.records[i].state {
		case stateOpen:
			snap.Open = append(snap.Open, s.grid.NodeAt(i))
		case stateClosed:
			snap.Closed = append(snap.Closed, s.grid.NodeAt(i))
		}
	}
	if s.found {
		snap.Path = s.path()
	}
	return snap
}
