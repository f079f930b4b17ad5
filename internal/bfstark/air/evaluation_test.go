package air

import (
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

func TestEvaluationTerminalHornerForm(t *testing.T) {
	field, xfield := testFields(t)
	challenge := xfield.NewElement(field.NewElementFromInt64(5), field.NewElementFromInt64(0), field.NewElementFromInt64(0))

	symbols := []*core.FieldElement{
		field.NewElementFromInt64(2),
		field.NewElementFromInt64(3),
		field.NewElementFromInt64(7),
	}

	got := EvaluationTerminal(symbols, challenge)

	want := xfield.Zero()
	for _, s := range symbols {
		want = want.Mul(challenge).Add(xfield.Lift(s))
	}

	if !got.Equal(want) {
		t.Fatalf("EvaluationTerminal did not match manual Horner fold")
	}
}

func TestEvaluationTerminalEmptyIsZero(t *testing.T) {
	field, xfield := testFields(t)
	challenge := xfield.Lift(field.NewElementFromInt64(11))
	got := EvaluationTerminal(nil, challenge)
	if !got.IsZero() {
		t.Fatalf("EvaluationTerminal(nil) should be zero")
	}
}
