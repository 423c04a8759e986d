// Command satcore solves DIMACS CNF instances with either the DPLL
// reference engine or the CDCL engine, and generates benchmark instances
// of known structure.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/solverkit/satcore/internal/benchmark"
	"github.com/solverkit/satcore/internal/dimacs"
	"github.com/solverkit/satcore/internal/dpll"
	"github.com/solverkit/satcore/internal/sat"
	"github.com/solverkit/satcore/internal/trace"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: satcore <solve|gen> ...")
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(os.Args[2:])
	case "gen":
		err = runGen(os.Args[2:])
	default:
		log.Fatalf("unknown command %q, want solve or gen", os.Args[1])
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	mode := fs.String("mode", "cdcl", "solver engine to use: dpll or cdcl")
	verbose := fs.Bool("verbose", false, "print search-tree trace output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("missing instance file")
	}
	path := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil { // flags may also follow the path
		return err
	}

	switch *mode {
	case "cdcl":
		return solveCDCL(path, *verbose)
	case "dpll":
		return solveDPLL(path)
	default:
		return fmt.Errorf("unknown mode %q, want dpll or cdcl", *mode)
	}
}

func solveCDCL(path string, verbose bool) error {
	opts := sat.DefaultOptions
	if verbose {
		opts.SearchTree = &trace.PrintSearchTreeSink{Tracer: log.New(os.Stdout, "", 0)}
	}
	s := sat.NewSolver(opts)

	if err := dimacs.Load(path, false, s); err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}
	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	verdict := s.Solve()
	stats := s.Stats()

	printVerdict(verdict.String(), s.Model())
	printStats(stats.Decisions, stats.Propagations, stats.Conflicts, stats.Learned, stats.Restarts, stats.Elapsed)
	return nil
}

func solveDPLL(path string) error {
	rec := &clauseRecorder{}
	if err := dimacs.Load(path, false, rec); err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}
	fmt.Printf("c variables:  %d\n", rec.numVars)
	fmt.Printf("c clauses:    %d\n", len(rec.clauses))

	s := dpll.NewSolver(rec.numVars, rec.clauses, dpll.Options{})
	verdict, model := s.Solve()
	stats := s.Stats()

	printVerdict(verdict.String(), model)
	fmt.Printf("c decisions:    %d\n", stats.Decisions)
	fmt.Printf("c propagations: %d\n", stats.Propagations)
	fmt.Printf("c max depth:    %d\n", stats.MaxDepth)
	fmt.Printf("c time (sec):   %f\n", stats.Elapsed.Seconds())
	return nil
}

func printVerdict(verdict string, model []bool) {
	fmt.Println(verdict)
	if model != nil {
		for i, v := range model {
			value := "False"
			if v {
				value = "True"
			}
			fmt.Printf("x%d = %s\n", i+1, value)
		}
	}
}

func printStats(decisions, propagations, conflicts, learned, restarts int64, elapsed time.Duration) {
	fmt.Printf("c decisions:    %d\n", decisions)
	fmt.Printf("c propagations: %d\n", propagations)
	fmt.Printf("c conflicts:    %d\n", conflicts)
	fmt.Printf("c learned:      %d\n", learned)
	fmt.Printf("c restarts:     %d\n", restarts)
	fmt.Printf("c time (sec):   %f\n", elapsed.Seconds())
}

// clauseRecorder adapts dimacs.Builder to collect a plain clause list for
// the DPLL engine, which works over signed-integer literals rather than
// sat.Literal.
type clauseRecorder struct {
	numVars int
	clauses [][]int
}

func (r *clauseRecorder) AddVariable() int {
	r.numVars++
	return r.numVars - 1
}

func (r *clauseRecorder) AddClause(lits []sat.Literal) {
	clause := make([]int, len(lits))
	for i, l := range lits {
		v := l.VarID() + 1
		if l.IsPositive() {
			clause[i] = v
		} else {
			clause[i] = -v
		}
	}
	r.clauses = append(r.clauses, clause)
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	numVars := fs.Int("vars", 10, "number of variables (3sat, parity)")
	numClauses := fs.Int("clauses", 0, "number of clauses (3sat; default 4.3*vars)")
	numPigeons := fs.Int("pigeons", 4, "number of pigeons (pigeonhole)")
	numHoles := fs.Int("holes", 3, "number of holes (pigeonhole)")
	seed := fs.Uint64("seed", 1, "random seed (3sat)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: satcore gen <3sat|pigeonhole|parity> <output>")
	}
	kind, output := fs.Arg(0), fs.Arg(1)
	if err := fs.Parse(fs.Args()[2:]); err != nil { // flags may also follow the positionals
		return err
	}

	var inst benchmark.Instance
	switch kind {
	case "3sat":
		clauses := *numClauses
		if clauses == 0 {
			clauses = int(float64(*numVars) * 4.3)
		}
		inst = benchmark.Random3SAT(*numVars, clauses, *seed)
	case "pigeonhole":
		inst = benchmark.Pigeonhole(*numPigeons, *numHoles)
	case "parity":
		inst = benchmark.Parity(*numVars)
	default:
		return fmt.Errorf("unknown benchmark type %q, want 3sat, pigeonhole, or parity", kind)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", output, err)
	}
	defer f.Close()

	if err := dimacs.WriteIntClauses(f, inst.NumVars, inst.Clauses); err != nil {
		return fmt.Errorf("could not write %q: %w", output, err)
	}
	fmt.Printf("c generated %s: %d vars, %d clauses -> %s\n", kind, inst.NumVars, len(inst.Clauses), output)
	return nil
}
