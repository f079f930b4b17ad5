package fri

import (
	"fmt"

	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/transcript"
)

// Verify checks a FRI proof, replaying the same transcript operations the
// prover performed (pushing roots and the final codeword, pulling the same
// challenges and indices) so that the verifier's Fiat-Shamir state matches
// the prover's at every step. It returns the (index, value) pairs read from
// the very first round, which the calling STARK verifier needs to check
// that the combined trace codeword and the FRI input codeword agree.
//
// Grounded directly on original_source/code/fri.py's Fri.verify, including
// its documented gap: the final codeword is re-interpolated and degree-
// checked, but never Merkle-checked against its root, because the verifier
// never learns the per-leaf salts for the untouched leaves of that layer.
func (f *FRI) Verify(proof *Proof, tr *transcript.Transcript) (bool, map[int]*core.XFieldElement, error) {
	rounds := f.NumRounds()
	if len(proof.Roots) != rounds {
		return false, nil, fmt.Errorf("fri: verify: expected %d round roots, got %d", rounds, len(proof.Roots))
	}
	if len(proof.Rounds) != rounds-1 {
		return false, nil, fmt.Errorf("fri: verify: expected %d rounds of queries, got %d", rounds-1, len(proof.Rounds))
	}

	omega := f.Domain.Omega()
	offset := f.Domain.Offset()

	alphas := make([]*core.XFieldElement, rounds)
	for r := 0; r < rounds; r++ {
		tr.PushMerkleRoot(proof.Roots[r])
		alphas[r] = tr.PullXScalar(f.XField)
	}

	lastCodeword := proof.FinalCodeword
	tr.PushXFieldElements(lastCodeword)

	degree := len(lastCodeword)/f.ExpansionFactor - 1
	lastOmega := omega
	lastOffset := offset
	for r := 0; r < rounds-1; r++ {
		lastOmega = lastOmega.Square()
		lastOffset = lastOffset.Square()
	}

	lastDomain, err := core.NewDomain(lastOffset, lastOmega, len(lastCodeword))
	if err != nil {
		return false, nil, fmt.Errorf("fri: verify: %w", err)
	}
	poly, err := lastDomain.XInterpolate(lastCodeword)
	if err != nil {
		return false, nil, fmt.Errorf("fri: verify: reinterpolating final codeword: %w", err)
	}
	reevaluated, err := lastDomain.XEvaluate(poly)
	if err != nil {
		return false, nil, fmt.Errorf("fri: verify: re-evaluating final codeword: %w", err)
	}
	for i := range lastCodeword {
		if !reevaluated[i].Equal(lastCodeword[i]) {
			return false, nil, fmt.Errorf("fri: verify: re-evaluated final codeword does not match the one received")
		}
	}
	if poly.Degree() > degree {
		return false, nil, fmt.Errorf("fri: verify: final codeword has degree %d, expected at most %d", poly.Degree(), degree)
	}

	topLevelIndices, err := tr.PullIndices(f.Domain.Length()/2, f.Domain.Length()>>(rounds-1), f.NumColinearityTests, 0)
	if err != nil {
		return false, nil, fmt.Errorf("fri: verify: sampling indices: %w", err)
	}

	polynomialValues := make(map[int]*core.XFieldElement)

	for r := 0; r < rounds-1; r++ {
		roundLen := f.Domain.Length() >> uint(r+1)
		cIndices := make([]int, len(topLevelIndices))
		for i, idx := range topLevelIndices {
			cIndices[i] = idx % roundLen
		}
		aIndices := cIndices
		bIndices := make([]int, len(cIndices))
		for i, idx := range aIndices {
			bIndices[i] = idx + roundLen
		}

		round := proof.Rounds[r]
		if len(round.Queries) != f.NumColinearityTests {
			return false, nil, fmt.Errorf("fri: verify: round %d: expected %d queries, got %d", r, f.NumColinearityTests, len(round.Queries))
		}

		for s, q := range round.Queries {
			if r == 0 {
				polynomialValues[aIndices[s]] = q.ALeaf
				polynomialValues[bIndices[s]] = q.BLeaf
			}

			ax := offset.Mul(omega.ExpInt(aIndices[s]))
			bx := offset.Mul(omega.ExpInt(bIndices[s]))
			cx := alphas[r]
			if !testColinearity(ax, q.ALeaf, bx, q.BLeaf, cx, q.CLeaf) {
				return false, nil, fmt.Errorf("fri: verify: round %d: colinearity check failed at test %d", r, s)
			}
		}

		for s, q := range round.Queries {
			aLeaf := core.XFieldElementsToBytes([]*core.XFieldElement{q.ALeaf})
			if !core.VerifySaltedPath(proof.Roots[r], aIndices[s], aLeaf, q.AAuth) {
				return false, nil, fmt.Errorf("fri: verify: round %d: merkle auth path failed for a at test %d", r, s)
			}
			bLeaf := core.XFieldElementsToBytes([]*core.XFieldElement{q.BLeaf})
			if !core.VerifySaltedPath(proof.Roots[r], bIndices[s], bLeaf, q.BAuth) {
				return false, nil, fmt.Errorf("fri: verify: round %d: merkle auth path failed for b at test %d", r, s)
			}
			cLeaf := core.XFieldElementsToBytes([]*core.XFieldElement{q.CLeaf})
			if !core.VerifySaltedPath(proof.Roots[r+1], cIndices[s], cLeaf, q.CAuth) {
				return false, nil, fmt.Errorf("fri: verify: round %d: merkle auth path failed for c at test %d", r, s)
			}
		}

		omega = omega.Square()
		offset = offset.Square()
	}

	return true, polynomialValues, nil
}

// testColinearity checks that the three points (ax,ay), (bx,by), (cx,cy)
// lie on a single line, via Lagrange interpolation through the first two
// points evaluated at cx.
func testColinearity(ax *core.FieldElement, ay *core.XFieldElement, bx *core.FieldElement, by *core.XFieldElement, cx, cy *core.XFieldElement) bool {
	xfield := ay.Field()
	axL := xfield.Lift(ax)
	bxL := xfield.Lift(bx)

	denom := bxL.Sub(axL)
	denomInv, err := denom.Inv()
	if err != nil {
		return false
	}
	slope := by.Sub(ay).Mul(denomInv)
	predicted := ay.Add(slope.Mul(cx.Sub(axL)))
	return predicted.Equal(cy)
}
