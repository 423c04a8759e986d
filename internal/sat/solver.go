package sat

import (
	"log"
	"sort"
	"time"
)

// watcher is an entry in a literal's watch list: the clause that must be
// examined when the literal becomes true, plus a guard literal. If the
// guard is already true, the clause is already satisfied and examining it
// can be skipped — this does not change correctness, only performance and
// (because it reorders the watch-list scan) the exact propagation order.
type watcher struct {
	clause *Clause
	guard  Literal
}

// Options configures a Solver. Use DefaultOptions as a starting point.
type Options struct {
	ClauseDecay   float64 // in (0, 1]; smaller decays learnt clause activity faster
	VariableDecay float64 // in (0, 1]; smaller decays VSIDS activity faster
	PhaseSaving   bool    // accepted but not used: decisions always assign true

	MaxConflicts int64     // <0 means unbounded
	Deadline     time.Time // zero value means unbounded

	SearchTree       SearchTreeSink       // optional
	ImplicationGraph ImplicationGraphSink // optional
}

// DefaultOptions returns reasonable defaults matching common CDCL
// implementations: a 0.95 variable activity decay, a 0.999 clause activity
// decay, constant-polarity decisions, and no resource bound.
var DefaultOptions = Options{
	ClauseDecay:   0.999,
	VariableDecay: 0.95,
	MaxConflicts:  -1,
}

// Stats reports the counters and elapsed time of a single Solve call.
type Stats struct {
	Decisions    int64
	Propagations int64
	Conflicts    int64
	Learned      int64
	Restarts     int64
	Elapsed      time.Duration
}

// Verdict is the outcome of a Solve call.
type Verdict int8

const (
	Unsatisfiable Verdict = iota
	Satisfiable
	VerdictUnknown // deadline or conflict budget exceeded
)

func (v Verdict) String() string {
	switch v {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Solver is a CDCL (conflict-driven clause learning) SAT solver: two
// watched literals per clause drive propagation, VSIDS drives decisions,
// 1-UIP conflict analysis drives non-chronological backtracking and clause
// learning, and the learnt-clause database is periodically reduced.
//
// A Solver owns all of its state; it performs no I/O and is not safe for
// concurrent use.
type Solver struct {
	opts Options

	constraints []*Clause
	learnts     []*Clause
	clauseInc   float64
	clauseDecay float64

	order *varOrder

	watchers [][]watcher // indexed by Literal
	propQ    *litQueue

	trail trail

	unsat bool

	stats     Stats
	startTime time.Time

	model []bool // set by Solve on a Satisfiable verdict

	seen        seenSet
	tmpLearnt   []Literal
	tmpExplain  []Literal
	tmpWatchers []watcher

	// search-tree instrumentation bookkeeping: nodeAt[d] is the most
	// recently opened search-tree node id at decision level d.
	nextNodeID int
	nodeAt     []int
}

// NewSolver returns a solver configured with the given options.
func NewSolver(opts Options) *Solver {
	return &Solver{
		opts:        opts,
		clauseDecay: opts.ClauseDecay,
		clauseInc:   1,
		order:       newVarOrder(opts.VariableDecay),
		propQ:       newLitQueue(128),
		nodeAt:      []int{0},
	}
}

// NewDefaultSolver is equivalent to NewSolver(DefaultOptions).
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.stats.Conflicts >= s.opts.MaxConflicts {
		return true
	}
	if !s.opts.Deadline.IsZero() && !time.Now().Before(s.opts.Deadline) {
		return true
	}
	return false
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return len(s.trail.level)
}

// NumAssigns returns the number of currently assigned variables.
func (s *Solver) NumAssigns() int {
	return s.trail.Position()
}

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int {
	return len(s.constraints)
}

// NumLearnts returns the number of clauses currently in the learnt-clause
// database.
func (s *Solver) NumLearnts() int {
	return len(s.learnts)
}

// Model returns the satisfying assignment found by the last successful
// Solve call, or nil if the last call did not return Satisfiable.
func (s *Solver) Model() []bool {
	return s.model
}

// Stats returns the counters and elapsed time of the most recent Solve
// call.
func (s *Solver) Stats() Stats {
	return s.stats
}

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v int) LBool {
	return s.trail.VarValue(v)
}

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return s.trail.Value(l)
}

// AddVariable declares one new variable and returns its ID.
func (s *Solver) AddVariable() int {
	id := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.trail.growVar()
	s.order.NewVar()
	s.seen.grow()
	return id
}

func (s *Solver) watch(c *Clause, onFalseOf, guard Literal) {
	s.watchers[onFalseOf] = append(s.watchers[onFalseOf], watcher{clause: c, guard: guard})
}

func (s *Solver) unwatch(c *Clause, onFalseOf Literal) {
	ws := s.watchers[onFalseOf]
	k := 0
	for _, w := range ws {
		if w.clause != c {
			ws[k] = w
			k++
		}
	}
	s.watchers[onFalseOf] = ws[:k]
}

// AddClause adds a (non-learnt) clause over previously declared variables.
// It may only be called at decision level 0. An empty clause, or one that
// simplifies to empty under the current (root-level) assignment, makes the
// solver permanently unsatisfiable rather than returning an error: per the
// problem's data model, malformed input is a construction-time concern for
// the caller (the DIMACS reader), not the solver.
func (s *Solver) AddClause(lits []Literal) {
	if s.trail.DecisionLevel() != 0 {
		panic("sat: AddClause called above decision level 0")
	}
	c, ok := newClause(s, lits, false)
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	if !ok {
		s.unsat = true
	}
}

func (s *Solver) enqueue(l Literal, reason *Clause) bool {
	switch s.trail.Value(l) {
	case False:
		return false
	case True:
		return true
	default:
		level := s.trail.DecisionLevel()
		s.trail.Assign(l, level, reason)
		s.propQ.Push(l)
		if reason != nil || level == 0 {
			s.stats.Propagations++
		}
		if sink := s.opts.ImplicationGraph; sink != nil {
			if reason == nil {
				sink.Decision(l, s.trail.DecisionLevel())
			} else {
				sink.Implication(l, s.trail.DecisionLevel(), reason.explainAssign(nil))
			}
		}
		return true
	}
}

// Propagate saturates unit propagation from the current propagation
// queue, rotating watches as needed, and returns the conflicting clause if
// one was found (in which case the queue is cleared and propagation must
// not be resumed until the trail is rewound).
func (s *Solver) Propagate() *Clause {
	for s.propQ.Len() > 0 {
		l := s.propQ.Pop()
		ws := s.watchers[l]
		// Copy the watch list out before clearing it: propagate below may
		// append back into s.watchers[l] (a satisfied guard, or a clause
		// re-watching l itself), and appending into a slice while also
		// ranging over its own backing array would overwrite entries the
		// loop hasn't read yet.
		s.tmpWatchers = append(s.tmpWatchers[:0], ws...)
		s.watchers[l] = ws[:0]

		for i, w := range s.tmpWatchers {
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}

			if w.clause.propagate(s, l) {
				continue
			}

			// w.clause became empty under the current assignment: conflict.
			// Re-home the watchers we haven't looked at yet before bailing.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQ.Clear()
			if sink := s.opts.ImplicationGraph; sink != nil {
				sink.Conflict(w.clause.explainFailure(nil))
			}
			return w.clause
		}
	}
	return nil
}

func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		s.clauseInc *= 1e-100
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc *= s.clauseDecay
}

// record adds a learnt clause to the database and asserts its first
// (1-UIP) literal, which is unit at the level the caller just backjumped
// to.
func (s *Solver) record(lits []Literal) {
	c, _ := newClause(s, lits, true)
	s.enqueue(lits[0], c)
	if c != nil {
		s.learnts = append(s.learnts, c)
	}
}

// ReduceDB discards the half of the learnt-clause database with the
// lowest activity, except clauses currently locked (i.e. the antecedent of
// a trail entry), explicitly protected, or whose activity is at least
// clauseInc divided by the number of learnt clauses.
func (s *Solver) ReduceDB() {
	sort.Slice(s.learnts, func(i, j int) bool {
		return s.learnts[i].activity > s.learnts[j].activity
	})

	lim := s.clauseInc / float64(len(s.learnts))
	half := len(s.learnts) / 2
	k := 0
	for i, c := range s.learnts {
		keep := i < half || c.locked(s) || c.isProtected() || c.activity >= lim
		if keep {
			s.learnts[k] = c
			k++
		} else {
			c.delete(s)
		}
	}
	s.learnts = s.learnts[:k]
}

// Simplify removes, from both the original and learnt clause sets, every
// clause already satisfied by the current root-level (decision level 0)
// assignment. It must only be called at decision level 0 with an empty
// propagation queue.
func (s *Solver) Simplify() bool {
	if s.trail.DecisionLevel() != 0 {
		log.Fatalf("sat: Simplify called at decision level %d, want 0", s.trail.DecisionLevel())
	}
	if s.propQ.Len() != 0 {
		log.Fatal("sat: Simplify called with a non-empty propagation queue")
	}
	if s.unsat || s.Propagate() != nil {
		s.unsat = true
		return false
	}
	s.simplifySlice(&s.learnts)
	s.simplifySlice(&s.constraints)
	return true
}

func (s *Solver) simplifySlice(clauses *[]*Clause) {
	cs := *clauses
	k := 0
	for _, c := range cs {
		if c.simplify(s) {
			c.delete(s)
		} else {
			cs[k] = c
			k++
		}
	}
	*clauses = cs[:k]
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.VarValue(v)
		if lb == Unknown {
			panic("sat: saveModel called with an unassigned variable")
		}
		model[v] = lb == True
	}
	s.model = model
}

func (s *Solver) decide(l Literal) {
	s.trail.NewDecisionLevel()
	s.enqueue(l, nil)
}

// Solve runs the CDCL main loop to completion, to the conflict budget, or
// to the deadline, whichever comes first. It is safe to call Solve again
// after adding more clauses (via AddClause, at decision level 0) to search
// for another model.
func (s *Solver) Solve() Verdict {
	s.stats = Stats{}
	s.startTime = time.Now()
	s.model = nil
	defer func() { s.stats.Elapsed = time.Since(s.startTime) }()

	if s.unsat {
		return Unsatisfiable
	}
	if conflict := s.Propagate(); conflict != nil {
		s.unsat = true
		return Unsatisfiable
	}

	restartBudget := 100
	reduceBudget := len(s.constraints)/3 + 100

	for {
		conflictsThisRun := int64(0)
		for {
			if s.shouldStop() {
				return VerdictUnknown
			}

			if conflict := s.Propagate(); conflict != nil {
				s.stats.Conflicts++
				conflictsThisRun++

				if sink := s.opts.SearchTree; sink != nil {
					sink.Conflict(s.currentNode())
				}
				if s.trail.DecisionLevel() == 0 {
					s.unsat = true
					return Unsatisfiable
				}

				learnt, backtrackLevel := s.analyze(conflict)
				s.trail.CancelUntil(backtrackLevel, s.order)
				s.nodeAt = s.nodeAt[:backtrackLevel+1]

				s.record(learnt)
				s.stats.Learned++

				s.decayClauseActivity()
				s.order.Decay()

				if len(s.learnts) > reduceBudget {
					s.ReduceDB()
					reduceBudget += reduceBudget / 5
				}
				continue
			}

			if s.trail.DecisionLevel() == 0 {
				s.Simplify()
			}

			if s.NumAssigns() == s.NumVariables() {
				s.saveModel()
				if sink := s.opts.SearchTree; sink != nil {
					sink.Solution(s.currentNode())
				}
				s.trail.CancelUntil(0, s.order)
				s.nodeAt = s.nodeAt[:1]
				return Satisfiable
			}

			if conflictsThisRun >= int64(restartBudget) {
				break // restart
			}

			v, ok := s.order.PopMax(s)
			if !ok {
				log.Fatal("sat: variable heap exhausted before all variables were assigned")
			}
			lit := PositiveLiteral(v)
			s.stats.Decisions++
			if sink := s.opts.SearchTree; sink != nil {
				sink.Decision(s.currentNode(), v, true, s.trail.DecisionLevel()+1)
			}
			s.decide(lit)
			s.openNode()
		}

		s.trail.CancelUntil(0, s.order)
		s.nodeAt = s.nodeAt[:1]
		s.stats.Restarts++
		restartBudget += restartBudget / 10
	}
}

// currentNode and openNode implement the minimal bookkeeping needed to
// report parent/child relationships to a SearchTreeSink without the
// solver itself caring about tree shape beyond "one node per decision
// level".
func (s *Solver) currentNode() int {
	return s.nodeAt[len(s.nodeAt)-1]
}

func (s *Solver) openNode() {
	s.nextNodeID++
	s.nodeAt = append(s.nodeAt, s.nextNodeID)
}
