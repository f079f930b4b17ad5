package core

import (
	"math/big"
	"testing"
)

func testField(t *testing.T) *Field {
	t.Helper()
	field, err := NewField(big.NewInt(3221225473))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return field
}

func TestFieldArithmetic(t *testing.T) {
	field := testField(t)

	t.Run("AddSub", func(t *testing.T) {
		a := field.NewElementFromInt64(17)
		b := field.NewElementFromInt64(5)
		sum := a.Add(b)
		if !sum.Sub(b).Equal(a) {
			t.Fatalf("(a+b)-b != a")
		}
	})

	t.Run("MulInv", func(t *testing.T) {
		a := field.NewElementFromInt64(123456)
		inv, err := a.Inv()
		if err != nil {
			t.Fatalf("Inv: %v", err)
		}
		if !a.Mul(inv).IsOne() {
			t.Fatalf("a * a^-1 != 1")
		}
	})

	t.Run("InvZeroFails", func(t *testing.T) {
		if _, err := field.Zero().Inv(); err == nil {
			t.Fatalf("expected error inverting zero")
		}
	})

	t.Run("ExpMatchesRepeatedMul", func(t *testing.T) {
		a := field.NewElementFromInt64(7)
		expected := field.One()
		for i := 0; i < 5; i++ {
			expected = expected.Mul(a)
		}
		if !a.ExpInt(5).Equal(expected) {
			t.Fatalf("ExpInt(5) != repeated multiplication")
		}
	})
}

func TestFieldGenerator(t *testing.T) {
	field := testField(t)
	g := field.Generator()
	order := new(big.Int).Sub(field.Modulus(), big.NewInt(1))
	if !g.Exp(order).IsOne() {
		t.Fatalf("generator^(p-1) != 1")
	}
}

func TestFieldPrimitiveRootOfUnity(t *testing.T) {
	field := testField(t)

	t.Run("RootOfOrder", func(t *testing.T) {
		root := field.GetPrimitiveRootOfUnity(1024)
		if root == nil {
			t.Fatalf("expected a root of unity of order 1024")
		}
		if !root.ExpInt(1024).IsOne() {
			t.Fatalf("root^1024 != 1")
		}
		if root.ExpInt(512).IsOne() {
			t.Fatalf("root^512 == 1, not primitive")
		}
	})

	t.Run("NonDividingOrder", func(t *testing.T) {
		if root := field.GetPrimitiveRootOfUnity(5); root != nil {
			t.Fatalf("expected nil root for order not dividing p-1")
		}
	})
}

func TestBatchInversion(t *testing.T) {
	field := testField(t)
	elements := []*FieldElement{
		field.NewElementFromInt64(2),
		field.NewElementFromInt64(3),
		field.NewElementFromInt64(17),
		field.NewElementFromInt64(999983),
	}
	inverses, err := BatchInversion(elements)
	if err != nil {
		t.Fatalf("BatchInversion: %v", err)
	}
	for i, e := range elements {
		if !e.Mul(inverses[i]).IsOne() {
			t.Fatalf("element %d: batch inverse incorrect", i)
		}
	}

	t.Run("RejectsZero", func(t *testing.T) {
		if _, err := BatchInversion([]*FieldElement{field.Zero()}); err == nil {
			t.Fatalf("expected error for zero element")
		}
	})
}
