package sat

import "strings"

// clauseStatus is a bitmask of per-clause flags orthogonal to its content.
type clauseStatus uint8

const (
	statusLearnt    clauseStatus = 1 << iota // clause was derived by conflict analysis
	statusProtected                          // spared by the next DB reduction
)

// Clause is an ordered disjunction of literals. The first two positions
// hold the watched literals; later positions are rotated into the watched
// slots as the propagator finds replacements, but the literal content never
// changes. Deleted clauses are removed from the watch lists and have their
// literals slice cleared to nil.
type Clause struct {
	literals []Literal
	activity float64
	status   clauseStatus

	// scanFrom remembers where the last replacement watch was found, so the
	// next propagate on this clause resumes scanning from there instead of
	// restarting at position 2 every time. Always in [2, len(literals)].
	scanFrom int
}

func (c *Clause) isLearnt() bool {
	return c.status&statusLearnt != 0
}

func (c *Clause) isProtected() bool {
	return c.status&statusProtected != 0
}

func (c *Clause) setProtected() {
	c.status |= statusProtected
}

// newClause builds a clause, watching its caller on the first two literal
// positions. If the clause is not learnt, it is first checked for
// root-level satisfaction, tautology, and duplicate literals. The returned
// bool is false only if the clause is unsatisfiable on its own (the empty
// clause); a nil *Clause with a true bool means the clause needed no
// representation (it was trivially satisfied, or became a unit fact that
// was enqueued directly).
func newClause(s *Solver, lits []Literal, learnt bool) (*Clause, bool) {
	size := len(lits)

	if !learnt {
		seen := make(map[Literal]struct{}, size)
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[lits[i].Opposite()]; ok {
				return nil, true // tautology: always true
			}
			if _, ok := seen[lits[i]]; ok {
				size--
				lits[i], lits[size] = lits[size], lits[i]
				continue
			}
			seen[lits[i]] = struct{}{}

			switch s.LitValue(lits[i]) {
			case True:
				return nil, true
			case False:
				size--
				lits[i], lits[size] = lits[size], lits[i]
			}
		}
		lits = lits[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(lits[0], nil)
	default:
		c := &Clause{
			literals: append([]Literal(nil), lits...),
			scanFrom: 2,
		}
		if learnt {
			c.status |= statusLearnt
			// Watch the second-highest level literal in slot 1, so that
			// backjumping re-asserts the clause as a unit at the new level.
			maxLevel, at := -1, 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.trail.LevelOf(c.literals[i].VarID()); lvl > maxLevel {
					maxLevel, at = lvl, i
				}
			}
			c.literals[at], c.literals[1] = c.literals[1], c.literals[at]
		}

		s.watch(c, c.literals[0].Opposite(), c.literals[1])
		s.watch(c, c.literals[1].Opposite(), c.literals[0])
		return c, true
	}
}

// locked reports whether c is the antecedent of the current assignment of
// its first literal's variable, meaning it cannot be removed without
// invalidating the trail.
func (c *Clause) locked(s *Solver) bool {
	return s.trail.AntecedentOf(c.literals[0].VarID()) == c
}

// delete detaches c from the watch lists and marks it deleted. Both of its
// watch-list entries are removed immediately.
func (c *Clause) delete(s *Solver) {
	s.unwatch(c, c.literals[0].Opposite())
	s.unwatch(c, c.literals[1].Opposite())
	c.literals = nil
}

// simplify removes literals made permanently false at the root level and
// reports whether the clause is now satisfied (and can be dropped).
func (c *Clause) simplify(s *Solver) bool {
	k := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// drop
		default:
			c.literals[k] = l
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// propagate is called when l's complement (one of c's watched literals)
// becomes false. It restores the watch invariant on c and returns true if
// the clause is satisfied, a new watch was found, or c became unit and its
// remaining literal was asserted through the solver's enqueue. It returns
// false only if c became unit and that literal is already false (the
// caller treats c itself as the conflict).
func (c *Clause) propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l, c.literals[0])
		return true
	}

	if c.scanFrom < 2 || c.scanFrom > len(c.literals) {
		c.scanFrom = 2
	}

	if at, ok := c.findReplacement(s, c.scanFrom, len(c.literals)); ok {
		c.installReplacement(s, l, at)
		return true
	}
	if at, ok := c.findReplacement(s, 2, c.scanFrom); ok {
		c.installReplacement(s, l, at)
		return true
	}

	s.watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

func (c *Clause) findReplacement(s *Solver, from, to int) (int, bool) {
	for i := from; i < to; i++ {
		if s.LitValue(c.literals[i]) != False {
			return i, true
		}
	}
	return 0, false
}

func (c *Clause) installReplacement(s *Solver, l Literal, at int) {
	c.literals[1], c.literals[at] = c.literals[at], l.Opposite()
	c.scanFrom = at
	s.watch(c, c.literals[1].Opposite(), c.literals[0])
}

// explainFailure returns, as a slice owned by the caller's scratch buffer,
// the negation of every literal of c — used when c is the conflicting
// clause itself (all its literals are false).
func (c *Clause) explainFailure(out []Literal) []Literal {
	out = out[:0]
	for _, l := range c.literals {
		out = append(out, l.Opposite())
	}
	return out
}

// explainAssign returns the negation of every literal but the first —
// used when c is the antecedent of its first literal's assignment.
func (c *Clause) explainAssign(out []Literal) []Literal {
	out = out[:0]
	for _, l := range c.literals[1:] {
		out = append(out, l.Opposite())
	}
	return out
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "()"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteString(" ∨ ")
		sb.WriteString(l.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
