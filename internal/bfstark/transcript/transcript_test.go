package transcript

import (
	"math/big"
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

func testField(t *testing.T) *core.Field {
	t.Helper()
	field, err := core.NewField(big.NewInt(3221225473))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return field
}

func TestTranscriptDeterministic(t *testing.T) {
	field := testField(t)
	xfield := core.NewXField(field)

	run := func() (*core.FieldElement, *core.XFieldElement, []int) {
		tr := New()
		tr.Push([]byte("root"))
		tr.PushFieldElement(field.NewElementFromInt64(7))
		scalar := tr.PullScalar(field)
		xscalar := tr.PullXScalar(xfield)
		indices, err := tr.PullIndices(1024, 64, 8, 2)
		if err != nil {
			t.Fatalf("PullIndices: %v", err)
		}
		return scalar, xscalar, indices
	}

	s1, x1, i1 := run()
	s2, x2, i2 := run()

	if !s1.Equal(s2) {
		t.Fatalf("PullScalar not deterministic across replays")
	}
	if !x1.Equal(x2) {
		t.Fatalf("PullXScalar not deterministic across replays")
	}
	if len(i1) != len(i2) {
		t.Fatalf("PullIndices returned different lengths across replays")
	}
	for k := range i1 {
		if i1[k] != i2[k] {
			t.Fatalf("PullIndices not deterministic at position %d: %d != %d", k, i1[k], i2[k])
		}
	}
}

func TestTranscriptSuccessivePullsDiffer(t *testing.T) {
	field := testField(t)
	tr := New()
	tr.Push([]byte("seed"))
	a := tr.PullScalar(field)
	b := tr.PullScalar(field)
	if a.Equal(b) {
		t.Fatalf("successive PullScalar calls returned the same value")
	}
}

func TestTranscriptDivergesOnDifferentPushes(t *testing.T) {
	field := testField(t)

	tr1 := New()
	tr1.Push([]byte("alpha"))
	s1 := tr1.PullScalar(field)

	tr2 := New()
	tr2.Push([]byte("beta"))
	s2 := tr2.PullScalar(field)

	if s1.Equal(s2) {
		t.Fatalf("different transcript histories produced the same pulled scalar")
	}
}

func TestPullIndicesRejectsOversizedRequest(t *testing.T) {
	tr := New()
	tr.Push([]byte("seed"))
	if _, err := tr.PullIndices(1024, 8, 16, 0); err == nil {
		t.Fatalf("expected error when requesting more distinct indices than the reduced space holds")
	}
}
