// Package transcript implements the Fiat-Shamir oracle shared by the prover
// and verifier: a single hash-chained channel that both sides drive with
// the identical sequence of push/pull calls, so that every "random"
// challenge is in fact a deterministic function of everything committed to
// the transcript so far.
//
// This generalizes the teacher's internal/.../utils/channel.go Channel,
// renaming Send/ReceiveRandom* to the push/pull vocabulary and adding typed
// push/pull for field elements, extension-field elements and rejection-
// sampled index sets, which the teacher's Channel does not need.
package transcript

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// Transcript is a Fiat-Shamir transcript: a running hash state plus the
// full byte stream pushed into it. The prover builds one while proving; the
// verifier rebuilds an identical one by pushing the same values back in
// (read off the proof) and must derive the same pulls.
type Transcript struct {
	state  []byte
	stream []byte
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{state: []byte{0}}
}

// Push appends raw bytes to the transcript and folds them into the running
// state.
func (t *Transcript) Push(data []byte) {
	t.stream = append(t.stream, data...)
	t.state = core.HashBytes(append(append([]byte{}, t.state...), data...))
}

// PushFieldElement pushes a single base-field element.
func (t *Transcript) PushFieldElement(fe *core.FieldElement) {
	t.Push(core.FieldElementsToBytes([]*core.FieldElement{fe}))
}

// PushFieldElements pushes a slice of base-field elements (e.g. a codeword).
func (t *Transcript) PushFieldElements(fes []*core.FieldElement) {
	t.Push(core.FieldElementsToBytes(fes))
}

// PushXFieldElement pushes a single extension-field element.
func (t *Transcript) PushXFieldElement(xe *core.XFieldElement) {
	t.Push(core.XFieldElementsToBytes([]*core.XFieldElement{xe}))
}

// PushXFieldElements pushes a slice of extension-field elements.
func (t *Transcript) PushXFieldElements(xes []*core.XFieldElement) {
	t.Push(core.XFieldElementsToBytes(xes))
}

// PushMerkleRoot pushes a Merkle commitment root. It is just Push under a
// distinct name for readability at call sites.
func (t *Transcript) PushMerkleRoot(root []byte) { t.Push(root) }

// PushAuthPath pushes a salted-Merkle authentication path (salt plus
// sibling hashes) so that it is bound into the transcript when used to
// derive later challenges.
func (t *Transcript) PushAuthPath(auth *core.AuthPath) {
	t.Push(auth.Salt)
	for _, sibling := range auth.Path {
		t.Push(sibling)
	}
}

// State returns a copy of the transcript's current running state.
func (t *Transcript) State() []byte { return append([]byte{}, t.state...) }

// Stream returns a copy of every byte ever pushed, i.e. the persisted proof.
func (t *Transcript) Stream() []byte { return append([]byte{}, t.stream...) }

// ratchet advances the internal state deterministically without pushing
// application data, used between successive pulls so that two pulls in a
// row never return the same bytes.
func (t *Transcript) ratchet() {
	t.state = core.HashBytes(t.state)
}

// PullScalar derives a uniformly distributed base-field challenge from the
// current transcript state.
func (t *Transcript) PullScalar(field *core.Field) *core.FieldElement {
	fe := field.Sample(t.state)
	t.ratchet()
	return fe
}

// PullXScalar derives a uniformly distributed extension-field challenge,
// the kind pulled for FRI folding randomness and AIR challenges.
func (t *Transcript) PullXScalar(xfield *core.XField) *core.XFieldElement {
	xe := xfield.Sample(t.state)
	t.ratchet()
	return xe
}

// PullXScalars derives n independent extension-field challenges, e.g. the
// eleven challenges original_source/code/vm.py's num_challenges() pulls
// before table extension.
func (t *Transcript) PullXScalars(xfield *core.XField, n int) []*core.XFieldElement {
	out := make([]*core.XFieldElement, n)
	for i := range out {
		out[i] = t.PullXScalar(xfield)
	}
	return out
}

// sampleIndex derives a single index in [0, size) from a seed, by
// interpreting the seed's bytes as a big-endian integer mod size. This
// mirrors original_source/code/fri.py's sample_index.
func sampleIndex(data []byte, size int) int {
	acc := new(big.Int).SetBytes(data)
	mod := big.NewInt(int64(size))
	return int(new(big.Int).Mod(acc, mod).Int64())
}

// PullIndices rejection-samples `number` distinct indices in [0, size),
// reduced into [0, reducedSize) for collision detection, optionally
// excluding indices that are multiples of excludeMultiplesOf. This
// reproduces original_source/code/fri.py's sample_indices exactly, with
// SHA-3 standing in for blake2b per this package's dependency set.
func (t *Transcript) PullIndices(size, reducedSize, number, excludeMultiplesOf int) ([]int, error) {
	if number > reducedSize {
		return nil, fmt.Errorf("transcript: cannot sample %d distinct indices from a reduced space of %d", number, reducedSize)
	}
	seed := t.state
	t.ratchet()

	var indices []int
	seen := make(map[int]bool)
	counter := uint32(0)
	const maxAttempts = 1 << 20
	for len(indices) < number {
		if counter > maxAttempts {
			return nil, fmt.Errorf("transcript: index sampling did not converge after %d attempts", maxAttempts)
		}
		var suffix [4]byte
		binary.BigEndian.PutUint32(suffix[:], counter)
		digest := core.HashBytes(append(append([]byte{}, seed...), suffix[:]...))
		counter++

		index := sampleIndex(digest, size)
		reduced := index % reducedSize
		if seen[reduced] {
			continue
		}
		if excludeMultiplesOf != 0 && index%excludeMultiplesOf == 0 {
			continue
		}
		seen[reduced] = true
		indices = append(indices, index)
	}
	return indices, nil
}
