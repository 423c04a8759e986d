// Package benchmark generates CNF instances of known structure for
// exercising and stress-testing the solver core: random 3-SAT, the
// pigeonhole principle, and Tseitin-encoded parity (XOR) chains. Every
// generator is a pure function of its parameters (for random 3-SAT these
// include an explicit seed), so the same call always produces the same
// clause list.
package benchmark

import "math/rand/v2"

// Instance is a generated CNF problem: numVars variables and clauses
// expressed with the signed-integer literal convention (nonzero integer;
// sign is polarity, magnitude is the 1-indexed variable).
type Instance struct {
	NumVars int
	Clauses [][]int
}

// Random3SAT generates numClauses random clauses of exactly 3 distinct
// variables each, drawn from [1, numVars], with an independently random
// polarity per literal. The instance is not guaranteed satisfiable.
func Random3SAT(numVars, numClauses int, seed uint64) Instance {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	clauses := make([][]int, numClauses)
	for c := 0; c < numClauses; c++ {
		vars := sampleThreeDistinct(rng, numVars)
		clause := make([]int, 3)
		for i, v := range vars {
			if rng.Float64() < 0.5 {
				clause[i] = v
			} else {
				clause[i] = -v
			}
		}
		clauses[c] = clause
	}
	return Instance{NumVars: numVars, Clauses: clauses}
}

// sampleThreeDistinct draws 3 distinct variable IDs from [1, numVars]
// uniformly without replacement, mirroring random.sample's semantics for a
// small, fixed sample size via rejection sampling.
func sampleThreeDistinct(rng *rand.Rand, numVars int) [3]int {
	var out [3]int
	chosen := map[int]bool{}
	for i := 0; i < 3; i++ {
		for {
			v := rng.IntN(numVars) + 1
			if !chosen[v] {
				chosen[v] = true
				out[i] = v
				break
			}
		}
	}
	return out
}

// Pigeonhole generates the classic unsatisfiable-when-overfull pigeonhole
// principle encoding: numPigeons pigeons, numHoles holes, variable
// x_{i,j} = (i-1)*numHoles + j ("pigeon i occupies hole j"). One
// at-least-one-hole clause per pigeon, plus one at-most-one-pigeon-per-hole
// binary clause per pair of pigeons and hole.
func Pigeonhole(numPigeons, numHoles int) Instance {
	v := func(i, j int) int { return (i-1)*numHoles + j }

	var clauses [][]int
	for i := 1; i <= numPigeons; i++ {
		clause := make([]int, numHoles)
		for j := 1; j <= numHoles; j++ {
			clause[j-1] = v(i, j)
		}
		clauses = append(clauses, clause)
	}
	for j := 1; j <= numHoles; j++ {
		for i1 := 1; i1 <= numPigeons; i1++ {
			for i2 := i1 + 1; i2 <= numPigeons; i2++ {
				clauses = append(clauses, []int{-v(i1, j), -v(i2, j)})
			}
		}
	}
	return Instance{NumVars: numPigeons * numHoles, Clauses: clauses}
}

// Parity generates a Tseitin-encoded XOR chain over numVars variables
// asserting odd parity (x1 XOR x2 XOR ... XOR xNumVars = 1), using
// auxiliary variables numVars+1..numVars+numVars-1 to hold each partial
// XOR: aux_1 = x1 XOR x2, aux_i = aux_{i-1} XOR x_{i+1}, and
// aux_{numVars-1} is asserted true. Each XOR gate contributes the four
// clauses of its Tseitin encoding. numVars must be at least 1; the degenerate numVars==1
// case has no auxiliary variables and directly asserts x1.
func Parity(numVars int) Instance {
	if numVars == 1 {
		return Instance{NumVars: 1, Clauses: [][]int{{1}}}
	}

	auxStart := numVars + 1
	var clauses [][]int

	for i := 2; i <= numVars; i++ {
		prevAux := auxStart + i - 3 // the running XOR; x1 itself before the first gate
		if i == 2 {
			prevAux = 1
		}
		currAux := auxStart + i - 2
		xi := i

		// currAux = prevAux XOR xi
		clauses = append(clauses,
			[]int{-currAux, prevAux, xi},
			[]int{-currAux, -prevAux, -xi},
			[]int{currAux, -prevAux, xi},
			[]int{currAux, prevAux, -xi},
		)
	}

	finalAux := auxStart + numVars - 2
	clauses = append(clauses, []int{finalAux})

	return Instance{NumVars: numVars + numVars - 1, Clauses: clauses}
}
