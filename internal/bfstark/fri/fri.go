// Package fri implements the FRI (Fast Reed-Solomon IOP of Proximity)
// engine: committing to a codeword, folding it round by round under
// Fiat-Shamir challenges, and proving/verifying that the final, tiny
// codeword corresponds to a low-degree polynomial.
//
// The algorithm is grounded directly on original_source/code/fri.py's Fri
// class (commit, query, prove, verify, sample_indices), expressed in the
// struct-with-methods shape of the teacher's internal/.../protocols/fri.go.
package fri

import (
	"fmt"

	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/transcript"
)

// FRI holds the fixed parameters of one FRI instance: the initial
// evaluation domain, the codeword's claimed-rate expansion factor, and how
// many colinearity tests the query phase runs.
type FRI struct {
	Domain              *core.Domain
	XField              *core.XField
	ExpansionFactor     int
	NumColinearityTests int
}

// New constructs a FRI instance. The domain length must exceed the
// expansion factor and leave room for at least one round of folding.
func New(domain *core.Domain, xfield *core.XField, expansionFactor, numColinearityTests int) (*FRI, error) {
	f := &FRI{
		Domain:              domain,
		XField:              xfield,
		ExpansionFactor:     expansionFactor,
		NumColinearityTests: numColinearityTests,
	}
	if f.NumRounds() < 1 {
		return nil, fmt.Errorf("fri: cannot run fri with less than one round (domain length %d, expansion factor %d, colinearity tests %d)",
			domain.Length(), expansionFactor, numColinearityTests)
	}
	return f, nil
}

// NumRounds returns how many folding rounds this instance will run before
// the codeword has shrunk to (roughly) expansion-factor size or the
// colinearity tests would oversample it.
func (f *FRI) NumRounds() int {
	length := f.Domain.Length()
	rounds := 0
	for length > f.ExpansionFactor && 4*f.NumColinearityTests < length {
		length /= 2
		rounds++
	}
	return rounds
}

// SoundnessBound computes a rough soundness-error bound for numTests
// colinearity checks against a codeword of the given rate rho,
// following the standard FRI soundness heuristic. Not part of the
// persisted proof (spec.md's persisted form is exactly the transcript byte
// stream) -- kept as a pure function for diagnostics and tests.
func SoundnessBound(rho float64, numTests int) float64 {
	if rho <= 0 || rho >= 1 {
		return 1
	}
	perTest := (1 + rho) / 2
	bound := 1.0
	for i := 0; i < numTests; i++ {
		bound *= perTest
	}
	return bound
}

func two(xfield *core.XField) *core.XFieldElement {
	return xfield.One().Add(xfield.One())
}

// Commit runs the commit phase over an initial codeword: for each round it
// Merkle-commits to the current codeword, pushes the root, pulls a folding
// challenge, and folds the codeword in half. It returns every round's
// codeword (including the final one) and every round's Merkle tree
// (including the final round's, which is still opened against during the
// query phase even though the verifier never reconstructs it from
// scratch -- see spec.md's "no final-root Merkle check" open question).
func (f *FRI) Commit(codeword []*core.XFieldElement, tr *transcript.Transcript) ([][]*core.XFieldElement, []*core.SaltedMerkleTree, [][]byte, error) {
	one := f.XField.One()
	twoInv, err := two(f.XField).Inv()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fri: commit: %w", err)
	}

	omega := f.Domain.Omega()
	offset := f.Domain.Offset()

	var codewords [][]*core.XFieldElement
	var trees []*core.SaltedMerkleTree
	var roots [][]byte

	rounds := f.NumRounds()
	for r := 0; r < rounds; r++ {
		n := len(codeword)

		leaves := make([][]byte, n)
		for i, v := range codeword {
			leaves[i] = core.XFieldElementsToBytes([]*core.XFieldElement{v})
		}
		tree, err := core.NewSaltedMerkleTree(leaves)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fri: commit: round %d: %w", r, err)
		}
		tr.PushMerkleRoot(tree.Root())
		roots = append(roots, tree.Root())
		trees = append(trees, tree)

		// A challenge is pulled every round, even the last, so the prover
		// and verifier ratchet the transcript the same number of times;
		// the final round's challenge is simply never used to fold.
		alpha := tr.PullXScalar(f.XField)

		if r == rounds-1 {
			codewords = append(codewords, codeword)
			break
		}

		codewords = append(codewords, codeword)

		half := n / 2
		next := make([]*core.XFieldElement, half)
		for i := 0; i < half; i++ {
			point := offset.Mul(omega.ExpInt(i))
			pointInv, err := point.Inv()
			if err != nil {
				return nil, nil, nil, fmt.Errorf("fri: commit: round %d: %w", r, err)
			}
			ratio := alpha.MulBase(pointInv)
			left := one.Add(ratio).Mul(codeword[i])
			right := one.Sub(ratio).Mul(codeword[half+i])
			next[i] = twoInv.Mul(left.Add(right))
		}

		codeword = next
		omega = omega.Square()
		offset = offset.Square()
	}

	tr.PushXFieldElements(codeword)

	return codewords, trees, roots, nil
}
