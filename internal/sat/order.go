package sat

import "github.com/rhartert/yagh"

// varOrder is the VSIDS (Variable State Independent Decaying Sum) branching
// heuristic: a max-heap of unassigned variables keyed by a decaying
// activity score, which is bumped whenever a variable is involved in
// conflict analysis. yagh.IntMap orders by ascending priority, so
// activities are stored negated to turn it into a max-heap, and it
// maintains its own variable->position index internally so that a bump
// can sift an entry in O(log n) instead of requiring a linear scan.
type varOrder struct {
	heap *yagh.IntMap[float64]

	activity []float64
	inc      float64
	decay    float64
}

func newVarOrder(decay float64) *varOrder {
	return &varOrder{
		heap:  yagh.New[float64](0),
		inc:   1,
		decay: decay,
	}
}

// NewVar registers one more variable, initially unassigned with zero
// activity.
func (vo *varOrder) NewVar() {
	vo.activity = append(vo.activity, 0)
	vo.heap.GrowBy(1)
	vo.heap.Put(len(vo.activity)-1, 0)
}

// Reinsert puts variable v back among the candidates for selection. Must be
// called whenever v becomes unassigned (e.g. on backtrack).
func (vo *varOrder) Reinsert(v int) {
	vo.heap.Put(v, -vo.activity[v])
}

// PopMax repeatedly discards heap entries for variables that are no longer
// unassigned and returns the first genuinely unassigned variable, or false
// if none remain.
func (vo *varOrder) PopMax(s *Solver) (int, bool) {
	for {
		kv, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		if s.VarValue(kv.Elem) == Unknown {
			return kv.Elem, true
		}
	}
}

// Bump increases v's activity by the current increment, sifting its heap
// position if it is still a candidate, and rescales every activity (and the
// increment) if v's activity would otherwise overflow.
func (vo *varOrder) Bump(v int) {
	vo.activity[v] += vo.inc
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.activity[v])
	}
	if vo.activity[v] > 1e100 {
		vo.rescale()
	}
}

// Decay divides the increment by decay (in (0,1)), so that future bumps
// matter more than past ones without touching every stored activity.
func (vo *varOrder) Decay() {
	vo.inc /= vo.decay
	if vo.inc > 1e100 {
		vo.rescale()
	}
}

func (vo *varOrder) rescale() {
	vo.inc *= 1e-100
	for v, a := range vo.activity {
		vo.activity[v] = a * 1e-100
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -vo.activity[v])
		}
	}
}
