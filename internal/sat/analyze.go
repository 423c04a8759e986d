package sat

// analyze performs 1-UIP conflict analysis starting from confl, a clause
// every literal of which is currently false at the solver's (necessarily
// positive) current decision level. It returns the learnt clause — whose
// first literal is always the asserting (1-UIP) literal — and the level to
// backjump to before that clause is asserted as a unit.
func (s *Solver) analyze(confl *Clause) ([]Literal, int) {
	// pending counts how many literals at the current decision level still
	// need to be resolved away before a single implication point remains.
	pending := 0
	backtrackLevel := 0

	s.seen.Clear()
	s.tmpLearnt = append(s.tmpLearnt[:0], -1) // slot 0 reserved for the UIP

	fold := func(lits []Literal) {
		for _, lit := range lits {
			v := lit.VarID()
			if s.seen.Contains(v) {
				continue
			}
			s.seen.Add(v)

			if lvl := s.trail.LevelOf(v); lvl == s.trail.DecisionLevel() {
				pending++
			} else if lvl > 0 {
				s.tmpLearnt = append(s.tmpLearnt, lit.Opposite())
				if lvl > backtrackLevel {
					backtrackLevel = lvl
				}
			}
			// level-0 literals are permanent facts: neither counted nor
			// added, since their negation can never become relevant again.
		}
	}

	explain := func(c *Clause, assignedLit bool) []Literal {
		if c.isLearnt() {
			s.bumpClauseActivity(c)
		}
		if assignedLit {
			s.tmpExplain = c.explainAssign(s.tmpExplain)
		} else {
			s.tmpExplain = c.explainFailure(s.tmpExplain)
		}
		return s.tmpExplain
	}

	fold(explain(confl, false))

	pos := s.trail.Position() - 1
	var uip Literal
	for {
		// Walk backward to the next seen literal on the trail.
		var v int
		for {
			uip = s.trail.lits[pos]
			pos--
			v = uip.VarID()
			if s.seen.Contains(v) {
				break
			}
		}

		pending--
		if pending == 0 {
			break
		}

		s.seen.Remove(v)
		fold(explain(s.trail.AntecedentOf(v), true))
	}

	s.tmpLearnt[0] = uip.Opposite()

	for _, lit := range s.tmpLearnt {
		s.order.Bump(lit.VarID())
	}

	return s.tmpLearnt, backtrackLevel
}
