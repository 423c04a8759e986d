package sat

// trail is the append-only, chronologically ordered record of assignments.
// It owns the per-variable assignment vector as well as the per-variable
// level and antecedent lookups, so that conflict analysis (which is on the
// hot path) never needs to scan the trail to answer "what level/antecedent
// does this variable have".
type trail struct {
	lits []Literal // chronological record of assigned literals
	lim  []int     // lim[d] is the trail position at which level d+1 began

	assigns []LBool   // indexed by Literal
	level   []int     // indexed by variable; -1 if unassigned
	reason  []*Clause // indexed by variable; nil for decisions and level-0 facts
}

// growVar extends the trail's per-variable bookkeeping for one more
// variable, which starts unassigned.
func (t *trail) growVar() {
	t.assigns = append(t.assigns, Unknown, Unknown)
	t.level = append(t.level, -1)
	t.reason = append(t.reason, nil)
}

// Value returns the current truth value of literal l.
func (t *trail) Value(l Literal) LBool {
	return t.assigns[l]
}

// VarValue returns the current truth value of variable v, expressed as the
// value of its positive literal.
func (t *trail) VarValue(v int) LBool {
	return t.assigns[PositiveLiteral(v)]
}

// LevelOf returns the decision level at which variable v was assigned, or
// -1 if it is currently unassigned.
func (t *trail) LevelOf(v int) int {
	return t.level[v]
}

// AntecedentOf returns the clause whose unit propagation forced variable
// v's current assignment, or nil if v is a decision, is unassigned, or was
// asserted as a root-level fact.
func (t *trail) AntecedentOf(v int) *Clause {
	return t.reason[v]
}

// DecisionLevel returns the number of decisions currently on the trail.
func (t *trail) DecisionLevel() int {
	return len(t.lim)
}

// Position returns the current trail length, i.e. the number of literals
// assigned so far.
func (t *trail) Position() int {
	return len(t.lits)
}

// NewDecisionLevel opens a new decision level starting at the current
// trail position.
func (t *trail) NewDecisionLevel() {
	t.lim = append(t.lim, len(t.lits))
}

// Assign requires variable l.VarID() to be unassigned and appends l to the
// trail at the given level with the given antecedent (nil for a decision
// or a level-0 fact).
func (t *trail) Assign(l Literal, level int, reason *Clause) {
	v := l.VarID()
	t.assigns[l] = True
	t.assigns[l.Opposite()] = False
	t.level[v] = level
	t.reason[v] = reason
	t.lits = append(t.lits, l)
}

// popOne undoes the most recently assigned trail literal, notifying order
// so the freed variable becomes a candidate for selection again.
func (t *trail) popOne(order *varOrder) {
	l := t.lits[len(t.lits)-1]
	v := l.VarID()

	t.assigns[l] = Unknown
	t.assigns[l.Opposite()] = Unknown
	t.reason[v] = nil
	t.level[v] = -1
	t.lits = t.lits[:len(t.lits)-1]

	order.Reinsert(v)
}

// CancelLevel undoes every literal assigned since the start of the current
// decision level and closes that level.
func (t *trail) CancelLevel(order *varOrder) {
	target := t.lim[len(t.lim)-1]
	for len(t.lits) > target {
		t.popOne(order)
	}
	t.lim = t.lim[:len(t.lim)-1]
}

// CancelUntil repeatedly cancels the current decision level until the
// trail is back at decision level d.
func (t *trail) CancelUntil(d int, order *varOrder) {
	for t.DecisionLevel() > d {
		t.CancelLevel(order)
	}
}
