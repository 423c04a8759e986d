package trace

import (
	"testing"

	"github.com/solverkit/satcore/internal/sat"
)

type recordingTracer struct {
	lines []string
}

func (r *recordingTracer) Printf(format string, v ...any) {
	r.lines = append(r.lines, format)
}

func TestPrintSearchTreeSink_EmitsOneLinePerEvent(t *testing.T) {
	rt := &recordingTracer{}
	sink := &PrintSearchTreeSink{Tracer: rt}

	sink.Decision(0, 1, true, 1)
	sink.Conflict(1)
	sink.Solution(1)

	if len(rt.lines) != 3 {
		t.Fatalf("got %d trace lines, want 3", len(rt.lines))
	}
}

func TestPrintImplicationGraphSink_EmitsOneLinePerEvent(t *testing.T) {
	rt := &recordingTracer{}
	sink := &PrintImplicationGraphSink{Tracer: rt}

	sink.Decision(sat.PositiveLiteral(0), 1)
	sink.Implication(sat.PositiveLiteral(1), 1, []sat.Literal{sat.NegativeLiteral(0)})
	sink.Conflict([]sat.Literal{sat.PositiveLiteral(0), sat.PositiveLiteral(1)})

	if len(rt.lines) != 3 {
		t.Fatalf("got %d trace lines, want 3", len(rt.lines))
	}
}

func TestCountingSearchTreeSink_TalliesEvents(t *testing.T) {
	c := &CountingSearchTreeSink{}
	c.Decision(0, 1, true, 1)
	c.Decision(1, 2, false, 2)
	c.Conflict(2)
	c.Solution(0)

	if c.Decisions != 2 || c.Conflicts != 1 || c.Solutions != 1 {
		t.Errorf("counts = %+v, want {Decisions:2 Conflicts:1 Solutions:1}", c)
	}
}
