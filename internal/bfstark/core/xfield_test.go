package core

import "testing"

func TestXFieldArithmetic(t *testing.T) {
	field := testField(t)
	xfield := NewXField(field)

	a := xfield.NewElement(field.NewElementFromInt64(3), field.NewElementFromInt64(5), field.NewElementFromInt64(7))
	b := xfield.NewElement(field.NewElementFromInt64(11), field.NewElementFromInt64(13), field.NewElementFromInt64(17))

	t.Run("AddSub", func(t *testing.T) {
		if !a.Add(b).Sub(b).Equal(a) {
			t.Fatalf("(a+b)-b != a")
		}
	})

	t.Run("MulInv", func(t *testing.T) {
		inv, err := a.Inv()
		if err != nil {
			t.Fatalf("Inv: %v", err)
		}
		if !a.Mul(inv).IsOne() {
			t.Fatalf("a * a^-1 != 1")
		}
	})

	t.Run("LiftUnlift", func(t *testing.T) {
		base := field.NewElementFromInt64(42)
		lifted := xfield.Lift(base)
		if !lifted.IsLifted() {
			t.Fatalf("lifted element should report IsLifted")
		}
		if !lifted.Unlift().Equal(base) {
			t.Fatalf("Unlift(Lift(x)) != x")
		}
	})

	t.Run("ExpMatchesRepeatedMul", func(t *testing.T) {
		expected := xfield.One()
		for i := 0; i < 4; i++ {
			expected = expected.Mul(a)
		}
		if !a.Exp(4).Equal(expected) {
			t.Fatalf("Exp(4) != repeated multiplication")
		}
	})
}

func TestXBatchInversion(t *testing.T) {
	field := testField(t)
	xfield := NewXField(field)
	elements := []*XFieldElement{
		xfield.NewElement(field.NewElementFromInt64(2), field.NewElementFromInt64(1), field.NewElementFromInt64(0)),
		xfield.Lift(field.NewElementFromInt64(5)),
		xfield.NewElement(field.NewElementFromInt64(9), field.NewElementFromInt64(4), field.NewElementFromInt64(2)),
	}
	inverses, err := XBatchInversion(elements)
	if err != nil {
		t.Fatalf("XBatchInversion: %v", err)
	}
	for i, e := range elements {
		if !e.Mul(inverses[i]).IsOne() {
			t.Fatalf("element %d: batch inverse incorrect", i)
		}
	}
}
