package fri

import "github.com/vybium/bf-stark/internal/bfstark/core"

// ColinearityQuery is one round's revealed triple (a, b from the current
// layer, c from the next layer) plus their salted-Merkle authentication
// paths, exactly the tuple original_source/code/fri.py's query pushes per
// colinearity test.
type ColinearityQuery struct {
	ALeaf, BLeaf, CLeaf *core.XFieldElement
	AAuth, BAuth, CAuth *core.AuthPath
}

// RoundQueries holds every colinearity-test query for one folding round.
type RoundQueries struct {
	Queries []ColinearityQuery
}

// Proof is the full FRI proof artifact: one Merkle root per round (the
// final round's root authenticates only the queried c leaves of the last
// folding step; the final codeword sent in the clear is not checked
// against it), the final codeword in the clear, and the query responses
// for every round.
type Proof struct {
	Roots         [][]byte
	FinalCodeword []*core.XFieldElement
	Rounds        []RoundQueries
}
