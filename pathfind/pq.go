package pathfind

type nodeState uint8

const (
	stateUnseen nodeState = iota
	stateOpen
	stateClosed
)

// record is the per-run bookkeeping for one node, indexed by Node.Index.
type record struct {
	g, h   int
	parent int
	state  nodeState
	// position inside openSet while stateOpen
	heapIndex int
	// insertion order, last tie-break
	seq uint64
}

func (r *record) f() int {
	return r.g + r.h
}

// openSet is a binary heap of node indices ordered by (f, h, seq).
type openSet struct {
	items   []int
	records []record
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a := &o.records[o.items[i]]
	b := &o.records[o.items[j]]
	if af, bf := a.f(), b.f(); af != bf {
		return af < bf
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (o *openSet) Swap(i, j int) {
	o.items[i], o.items[j] = o.items[j], o.items[i]
	o.records[o.items[i]].heapIndex = i
	o.records[o.items[j]].heapIndex = j
}

func (o *openSet) Push(x any) {
	idx := x.(int)
	o.records[idx].heapIndex = len(o.items)
	o.items = append(o.items, idx)
}

func (o *openSet) Pop() any {
	n := len(o.items)
	idx := o.items[n-1]
	o.items = o.items[:n-1]
	o.records[idx].heapIndex = -1
	return idx
}
