// Package dimacs reads and writes the DIMACS CNF text format: a header
// line `p cnf <N> <M>` declaring variable and clause counts, `c`-prefixed
// comment lines, and whitespace-separated, possibly multi-line clauses
// terminated by a literal `0`. Zero-literal clauses are preserved on read,
// since an empty clause renders the formula unsatisfiable rather than being
// a parse error.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/solverkit/satcore/internal/sat"
)

// Builder is the minimal surface a CNF consumer must expose to load a
// DIMACS file into it; sat.Solver satisfies it directly.
type Builder interface {
	AddVariable() int
	AddClause(lits []sat.Literal)
}

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("dimacs: %w", err)
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at filename and feeds its declared
// variable count and clauses into b, in order.
func Load(filename string, gzipped bool, b Builder) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return err
	}
	defer r.Close()

	bb := &builderAdapter{b: b}
	if err := extdimacs.ReadBuilder(r, bb); err != nil {
		return fmt.Errorf("dimacs: %s: %w", filename, err)
	}
	return nil
}

// builderAdapter translates github.com/rhartert/dimacs's int-literal
// callbacks into sat.Literal and onto a Builder.
type builderAdapter struct {
	b Builder
}

func (a *builderAdapter) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q, want cnf", problem)
	}
	for i := 0; i < nVars; i++ {
		a.b.AddVariable()
	}
	return nil
}

func (a *builderAdapter) Clause(tmpClause []int) error {
	lits := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(-l - 1)
		} else {
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	a.b.AddClause(lits)
	return nil
}

func (a *builderAdapter) Comment(string) error {
	return nil
}

// Write serializes numVars variables and clauses as a DIMACS CNF document.
func Write(w io.Writer, numVars int, clauses [][]sat.Literal) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", numVars, len(clauses)); err != nil {
		return fmt.Errorf("dimacs: %w", err)
	}
	for _, c := range clauses {
		for _, l := range c {
			sign := ""
			if !l.IsPositive() {
				sign = "-"
			}
			if _, err := fmt.Fprintf(bw, "%s%d ", sign, l.VarID()+1); err != nil {
				return fmt.Errorf("dimacs: %w", err)
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return fmt.Errorf("dimacs: %w", err)
		}
	}
	return bw.Flush()
}

// WriteIntClauses serializes a clause list already expressed with the
// signed-integer literal convention (as produced by the benchmark
// generator and consumed by the DPLL engine), without routing it through
// sat.Literal.
func WriteIntClauses(w io.Writer, numVars int, clauses [][]int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", numVars, len(clauses)); err != nil {
		return fmt.Errorf("dimacs: %w", err)
	}
	for _, c := range clauses {
		for _, lit := range c {
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return fmt.Errorf("dimacs: %w", err)
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return fmt.Errorf("dimacs: %w", err)
		}
	}
	return bw.Flush()
}

// WriteModel writes a satisfying assignment in the CLI's output
// convention: one `x<k> = True|False` line per variable, 1-indexed.
func WriteModel(w io.Writer, model []bool) error {
	bw := bufio.NewWriter(w)
	for i, v := range model {
		value := "False"
		if v {
			value = "True"
		}
		if _, err := fmt.Fprintf(bw, "x%d = %s\n", i+1, value); err != nil {
			return fmt.Errorf("dimacs: %w", err)
		}
	}
	return bw.Flush()
}

// modelBuilder adapts extdimacs.Builder to collect DIMACS-formatted model
// fixtures used in tests: each non-comment line is one model, expressed as
// a list of signed literals (as clauses would be), read to end of file.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(string, int, int) error {
	return fmt.Errorf("dimacs: model files must not contain a problem line")
}

func (b *modelBuilder) Comment(string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

// ReadModels parses a test fixture file holding one or more models, each a
// line of signed integers (positive for true, negative for false)
// terminated by 0, and returns them in file order.
func ReadModels(filename string) ([][]bool, error) {
	r, err := openReader(filename, false)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	mb := &modelBuilder{}
	if err := extdimacs.ReadBuilder(r, mb); err != nil {
		return nil, fmt.Errorf("dimacs: %s: %w", filename, err)
	}
	return mb.models, nil
}
