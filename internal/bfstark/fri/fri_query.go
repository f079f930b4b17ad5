package fri

import (
	"fmt"

	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/transcript"
)

// query reveals the a/b leaves of the current round's codeword and the c
// leaf of the next round's codeword at each sampled index, together with
// their authentication paths, exactly mirroring fri.py's query method.
func query(currentTree, nextTree *core.SaltedMerkleTree, currentCodeword, nextCodeword []*core.XFieldElement, cIndices []int) (RoundQueries, []int, error) {
	half := len(currentCodeword) / 2
	aIndices := append([]int{}, cIndices...)
	bIndices := make([]int, len(cIndices))
	for i, idx := range cIndices {
		bIndices[i] = idx + half
	}

	queries := make([]ColinearityQuery, len(cIndices))
	for s := range cIndices {
		aAuth, err := currentTree.Open(aIndices[s])
		if err != nil {
			return RoundQueries{}, nil, fmt.Errorf("fri: query: %w", err)
		}
		bAuth, err := currentTree.Open(bIndices[s])
		if err != nil {
			return RoundQueries{}, nil, fmt.Errorf("fri: query: %w", err)
		}
		cAuth, err := nextTree.Open(cIndices[s])
		if err != nil {
			return RoundQueries{}, nil, fmt.Errorf("fri: query: %w", err)
		}
		queries[s] = ColinearityQuery{
			ALeaf: currentCodeword[aIndices[s]],
			BLeaf: currentCodeword[bIndices[s]],
			CLeaf: nextCodeword[cIndices[s]],
			AAuth: aAuth,
			BAuth: bAuth,
			CAuth: cAuth,
		}
	}
	combined := append(append([]int{}, aIndices...), bIndices...)
	return RoundQueries{Queries: queries}, combined, nil
}

// Prove runs the full FRI prover: commit phase, index sampling, then the
// query phase over every round. It returns the proof artifact and the
// top-level indices (needed by the calling STARK prover to also open the
// trace codewords at the same points).
func (f *FRI) Prove(codeword []*core.XFieldElement, tr *transcript.Transcript) (*Proof, []int, error) {
	if len(codeword) != f.Domain.Length() {
		return nil, nil, fmt.Errorf("fri: prove: codeword length %d does not match domain length %d", len(codeword), f.Domain.Length())
	}

	codewords, trees, roots, err := f.Commit(codeword, tr)
	if err != nil {
		return nil, nil, fmt.Errorf("fri: prove: %w", err)
	}

	topLevelIndices, err := tr.PullIndices(f.Domain.Length()/2, len(codewords[len(codewords)-1]), f.NumColinearityTests, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("fri: prove: sampling indices: %w", err)
	}

	indices := append([]int{}, topLevelIndices...)
	var rounds []RoundQueries
	for i := 0; i < len(codewords)-1; i++ {
		half := len(codewords[i]) / 2
		for j, idx := range indices {
			indices[j] = idx % half
		}
		rq, _, err := query(trees[i], trees[i+1], codewords[i], codewords[i+1], indices)
		if err != nil {
			return nil, nil, fmt.Errorf("fri: prove: round %d: %w", i, err)
		}
		rounds = append(rounds, rq)
	}

	proof := &Proof{
		Roots:         roots,
		FinalCodeword: codewords[len(codewords)-1],
		Rounds:        rounds,
	}
	return proof, topLevelIndices, nil
}
