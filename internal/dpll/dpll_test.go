package dpll

import "testing"

func checkModel(t *testing.T, numVars int, clauses [][]int, model []bool) {
	t.Helper()
	if len(model) != numVars {
		t.Fatalf("model has %d entries, want %d", len(model), numVars)
	}
	for _, cl := range clauses {
		satisfied := false
		for _, lit := range cl {
			v := abs(lit)
			val := model[v-1]
			if lit < 0 {
				val = !val
			}
			if val {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Errorf("clause %v not satisfied by model %v", cl, model)
		}
	}
}

func TestSolve_TwoClauseSatisfiable(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 2}}
	s := NewSolver(2, clauses, Options{})
	verdict, model := s.Solve()
	if verdict != Satisfiable {
		t.Fatalf("Solve() = %v, want Satisfiable", verdict)
	}
	checkModel(t, 2, clauses, model)
	if !model[1] {
		t.Errorf("x2 = %v, want true (forced by both clauses)", model[1])
	}
}

func TestSolve_UnitConflictIsUnsatisfiable(t *testing.T) {
	s := NewSolver(1, [][]int{{1}, {-1}}, Options{})
	if verdict, _ := s.Solve(); verdict != Unsatisfiable {
		t.Fatalf("Solve() = %v, want Unsatisfiable", verdict)
	}
}

func TestSolve_PureUnitPropagationNoDecisions(t *testing.T) {
	s := NewSolver(2, [][]int{{1}, {-1, 2}}, Options{})
	verdict, model := s.Solve()
	if verdict != Satisfiable {
		t.Fatalf("Solve() = %v, want Satisfiable", verdict)
	}
	if !model[0] || !model[1] {
		t.Errorf("model = %v, want [true true]", model)
	}
	if s.Stats().Decisions != 0 {
		t.Errorf("Decisions = %d, want 0 (pure propagation)", s.Stats().Decisions)
	}
}

func TestSolve_ThreeSATExample(t *testing.T) {
	clauses := [][]int{
		{1, 2, 3},
		{-1, -2, 3},
		{1, -2, -3},
		{-1, 2, -3},
	}
	s := NewSolver(3, clauses, Options{})
	verdict, model := s.Solve()
	if verdict != Satisfiable {
		t.Fatalf("Solve() = %v, want Satisfiable", verdict)
	}
	checkModel(t, 3, clauses, model)
}

func TestSolve_PigeonholeThreeIntoTwoIsUnsatisfiable(t *testing.T) {
	vr := func(i, j int) int { return (i-1)*2 + j }
	var clauses [][]int
	for i := 1; i <= 3; i++ {
		clauses = append(clauses, []int{vr(i, 1), vr(i, 2)})
	}
	for j := 1; j <= 2; j++ {
		for i1 := 1; i1 <= 3; i1++ {
			for i2 := i1 + 1; i2 <= 3; i2++ {
				clauses = append(clauses, []int{-vr(i1, j), -vr(i2, j)})
			}
		}
	}
	s := NewSolver(6, clauses, Options{})
	if verdict, _ := s.Solve(); verdict != Unsatisfiable {
		t.Fatalf("Solve() = %v, want Unsatisfiable", verdict)
	}
}

func TestSolve_EmptyClauseListIsSatisfiable(t *testing.T) {
	s := NewSolver(0, nil, Options{})
	verdict, model := s.Solve()
	if verdict != Satisfiable {
		t.Fatalf("Solve() = %v, want Satisfiable", verdict)
	}
	if len(model) != 0 {
		t.Errorf("model = %v, want empty", model)
	}
}

func TestSolve_EmptyClauseIsUnsatisfiable(t *testing.T) {
	s := NewSolver(1, [][]int{{}}, Options{})
	if verdict, _ := s.Solve(); verdict != Unsatisfiable {
		t.Fatalf("Solve() = %v, want Unsatisfiable", verdict)
	}
}

func TestSolve_StatsResetAcrossCalls(t *testing.T) {
	s := NewSolver(3, [][]int{{1, 2, 3}, {-1, -2}, {-2, -3}, {-1, -3}}, Options{})
	v1, _ := s.Solve()
	first := s.Stats()
	v2, _ := s.Solve()
	second := s.Stats()
	if v1 != v2 {
		t.Fatalf("verdict changed across repeated Solve calls: %v vs %v", v1, v2)
	}
	if first.Decisions != second.Decisions || first.Propagations != second.Propagations {
		t.Errorf("stats not deterministic across repeated Solve calls: %+v vs %+v", first, second)
	}
}
