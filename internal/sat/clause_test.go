package sat

import "testing"

func newTestSolver(numVars int) *Solver {
	s := NewDefaultSolver()
	for i := 0; i < numVars; i++ {
		s.AddVariable()
	}
	return s
}

func TestNewClause_TautologyReturnsNilTrue(t *testing.T) {
	s := newTestSolver(1)
	c, ok := newClause(s, []Literal{PositiveLiteral(0), NegativeLiteral(0)}, false)
	if c != nil || !ok {
		t.Fatalf("newClause(tautology) = (%v, %v), want (nil, true)", c, ok)
	}
}

func TestNewClause_DuplicateLiteralsCollapse(t *testing.T) {
	s := newTestSolver(2)
	c, ok := newClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(0)}, false)
	if !ok || c == nil {
		t.Fatalf("newClause(dup) = (%v, %v), want a non-nil clause", c, ok)
	}
	if len(c.literals) != 2 {
		t.Errorf("len(literals) = %d, want 2 after deduplication", len(c.literals))
	}
}

func TestNewClause_EmptyReturnsUnsat(t *testing.T) {
	s := newTestSolver(1)
	c, ok := newClause(s, nil, false)
	if c != nil || ok {
		t.Fatalf("newClause(empty) = (%v, %v), want (nil, false)", c, ok)
	}
}

func TestNewClause_UnitEnqueuesDirectly(t *testing.T) {
	s := newTestSolver(1)
	c, ok := newClause(s, []Literal{PositiveLiteral(0)}, false)
	if c != nil {
		t.Fatalf("newClause(unit) returned a clause, want nil (enqueued directly)")
	}
	if !ok {
		t.Fatal("newClause(unit) = false, want true")
	}
	if s.LitValue(PositiveLiteral(0)) != True {
		t.Error("unit clause literal was not assigned true")
	}
}

func TestClause_LockedReflectsAntecedent(t *testing.T) {
	s := newTestSolver(2)
	c, _ := newClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1)}, false)
	if c.locked(s) {
		t.Fatal("freshly built clause should not be locked before any assignment")
	}
	s.trail.Assign(PositiveLiteral(0), 0, c)
	if !c.locked(s) {
		t.Error("clause should be locked once it is the antecedent of literals[0]'s assignment")
	}
}

func TestClause_SimplifyDropsFalseLiterals(t *testing.T) {
	s := newTestSolver(3)
	c, _ := newClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}, false)
	s.trail.Assign(NegativeLiteral(1), 0, nil) // x2 = false
	if c.simplify(s) {
		t.Fatal("simplify reported satisfied, want still-pending clause")
	}
	if len(c.literals) != 2 {
		t.Errorf("len(literals) = %d after simplify, want 2", len(c.literals))
	}
}

func TestClause_SimplifyDetectsSatisfied(t *testing.T) {
	s := newTestSolver(2)
	c, _ := newClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1)}, false)
	s.trail.Assign(PositiveLiteral(0), 0, nil)
	if !c.simplify(s) {
		t.Error("simplify should report satisfied once a disjunct is true")
	}
}

func TestClause_PropagateFindsReplacementWatch(t *testing.T) {
	s := newTestSolver(3)
	c, _ := newClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)}, false)

	s.trail.Assign(NegativeLiteral(0), 0, nil)
	if ok := c.propagate(s, NegativeLiteral(0)); !ok {
		t.Fatal("propagate should find literals[2] as a replacement watch")
	}
	if s.LitValue(PositiveLiteral(1)) != Unknown {
		t.Error("propagate should not force an assignment when a replacement watch exists")
	}
}

func TestClause_PropagateAssertsUnit(t *testing.T) {
	s := newTestSolver(2)
	c, _ := newClause(s, []Literal{PositiveLiteral(0), PositiveLiteral(1)}, false)

	s.trail.Assign(NegativeLiteral(1), 0, nil)
	if ok := c.propagate(s, NegativeLiteral(1)); !ok {
		t.Fatal("propagate should succeed by asserting the remaining literal")
	}
	if s.LitValue(PositiveLiteral(0)) != True {
		t.Error("propagate should have asserted x1 true as the last remaining disjunct")
	}
}

func TestClause_ExplainFailureNegatesEveryLiteral(t *testing.T) {
	c := &Clause{literals: []Literal{PositiveLiteral(0), NegativeLiteral(1)}}
	out := c.explainFailure(nil)
	want := []Literal{NegativeLiteral(0), PositiveLiteral(1)}
	if len(out) != len(want) || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("explainFailure() = %v, want %v", out, want)
	}
}

func TestClause_ExplainAssignSkipsFirstLiteral(t *testing.T) {
	c := &Clause{literals: []Literal{PositiveLiteral(0), NegativeLiteral(1), PositiveLiteral(2)}}
	out := c.explainAssign(nil)
	want := []Literal{PositiveLiteral(1), NegativeLiteral(2)}
	if len(out) != len(want) || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("explainAssign() = %v, want %v", out, want)
	}
}

func TestClause_StatusFlags(t *testing.T) {
	c := &Clause{}
	if c.isLearnt() || c.isProtected() {
		t.Fatal("fresh clause should have neither status flag set")
	}
	c.status |= statusLearnt
	c.setProtected()
	if !c.isLearnt() || !c.isProtected() {
		t.Error("status flags not observed after being set")
	}
}
