// Package trace provides concrete observers for the solver's search-tree
// and implication-graph event streams (sat.SearchTreeSink and
// sat.ImplicationGraphSink), independent of the solver's internal
// representation.
package trace

import (
	"github.com/solverkit/satcore/internal/sat"
)

// Tracer is the minimal logging surface a sink writes through; *log.Logger
// satisfies it directly, and tests can substitute one that writes to
// t.Logf.
type Tracer interface {
	Printf(format string, v ...any)
}

// PrintSearchTreeSink renders every search-tree event as a line of trace
// output, in the style of a solver's --verbose mode.
type PrintSearchTreeSink struct {
	Tracer Tracer
}

func (p *PrintSearchTreeSink) Decision(parent, v int, value bool, level int) {
	p.Tracer.Printf("[TRACE] decision: parent=%d var=%d value=%t level=%d", parent, v, value, level)
}

func (p *PrintSearchTreeSink) Conflict(parent int) {
	p.Tracer.Printf("[TRACE] conflict: parent=%d", parent)
}

func (p *PrintSearchTreeSink) Solution(parent int) {
	p.Tracer.Printf("[TRACE] solution: parent=%d", parent)
}

// PrintImplicationGraphSink renders every implication-graph event as a
// line of trace output.
type PrintImplicationGraphSink struct {
	Tracer Tracer
}

func (p *PrintImplicationGraphSink) Decision(lit sat.Literal, level int) {
	p.Tracer.Printf("[TRACE] decision: lit=%s level=%d", lit, level)
}

func (p *PrintImplicationGraphSink) Implication(lit sat.Literal, level int, antecedents []sat.Literal) {
	p.Tracer.Printf("[TRACE] implication: lit=%s level=%d antecedents=%v", lit, level, antecedents)
}

func (p *PrintImplicationGraphSink) Conflict(lits []sat.Literal) {
	p.Tracer.Printf("[TRACE] conflict: lits=%v", lits)
}

// CountingSearchTreeSink tallies event counts instead of emitting text,
// for tests that assert on how many times each event fired rather than on
// log formatting.
type CountingSearchTreeSink struct {
	Decisions int
	Conflicts int
	Solutions int
}

func (c *CountingSearchTreeSink) Decision(parent, v int, value bool, level int) {
	c.Decisions++
}

func (c *CountingSearchTreeSink) Conflict(parent int) {
	c.Conflicts++
}

func (c *CountingSearchTreeSink) Solution(parent int) {
	c.Solutions++
}

// verify, at compile time, that the exported sinks satisfy the solver's
// sink interfaces.
var (
	_ sat.SearchTreeSink       = (*PrintSearchTreeSink)(nil)
	_ sat.ImplicationGraphSink = (*PrintImplicationGraphSink)(nil)
	_ sat.SearchTreeSink       = (*CountingSearchTreeSink)(nil)
)
