package air

import (
	"math/big"
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// identityTable is a minimal single-column Table used to exercise the
// quotient machinery directly, independent of any brainfuck table's real
// constraint set.
type identityTable struct {
	height  int
	omicron *core.FieldElement
}

func (tb *identityTable) Width() int         { return 1 }
func (tb *identityTable) OriginalWidth() int { return 1 }
func (tb *identityTable) Height() int        { return tb.height }
func (tb *identityTable) Omicron() *core.FieldElement {
	return tb.omicron
}
func (tb *identityTable) BoundaryConstraints() []Constraint {
	return []Constraint{{Eval: func(row []*core.XFieldElement) *core.XFieldElement { return row[0] }, Degree: 1}}
}
func (tb *identityTable) TransitionConstraints() []TransitionConstraint {
	return []TransitionConstraint{{
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			return next[0].Sub(current[0])
		},
		Degree: 1,
	}}
}
func (tb *identityTable) TerminalConstraints() []Constraint {
	return []Constraint{{Eval: func(row []*core.XFieldElement) *core.XFieldElement { return row[0] }, Degree: 1}}
}

func testFields(t *testing.T) (*core.Field, *core.XField) {
	t.Helper()
	field, err := core.NewField(big.NewInt(3221225473))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return field, core.NewXField(field)
}

func TestBoundaryQuotientsDivideOutZerofier(t *testing.T) {
	field, xfield := testFields(t)
	height := 4
	expansionFactor := 4
	friLength := height * expansionFactor

	traceOmega := field.GetPrimitiveRootOfUnity(height)
	if traceOmega == nil {
		t.Fatalf("no root of unity of order %d", height)
	}
	friOmega := field.GetPrimitiveRootOfUnity(friLength)
	if friOmega == nil {
		t.Fatalf("no root of unity of order %d", friLength)
	}
	friDomain, err := core.NewDomain(field.Generator(), friOmega, friLength)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	column := make([]*core.XFieldElement, friLength)
	for i := range column {
		column[i] = xfield.Lift(field.NewElementFromInt64(int64(i*7 + 1)))
	}
	table := &identityTable{height: height, omicron: traceOmega}

	quotients, err := BoundaryQuotients(friDomain, xfield, [][]*core.XFieldElement{column}, table)
	if err != nil {
		t.Fatalf("BoundaryQuotients: %v", err)
	}
	if len(quotients) != 1 {
		t.Fatalf("expected one boundary quotient codeword, got %d", len(quotients))
	}

	for i := 0; i < friLength; i++ {
		point := friDomain.Point(i)
		zerofier := point.Sub(field.One())
		reconstructed := quotients[0][i].MulBase(zerofier)
		if !reconstructed.Equal(column[i]) {
			t.Fatalf("point %d: quotient * zerofier != original constraint evaluation", i)
		}
	}
}

func TestTerminalQuotientsDivideOutZerofier(t *testing.T) {
	field, xfield := testFields(t)
	height := 4
	expansionFactor := 4
	friLength := height * expansionFactor

	traceOmega := field.GetPrimitiveRootOfUnity(height)
	friOmega := field.GetPrimitiveRootOfUnity(friLength)
	friDomain, err := core.NewDomain(field.Generator(), friOmega, friLength)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	column := make([]*core.XFieldElement, friLength)
	for i := range column {
		column[i] = xfield.Lift(field.NewElementFromInt64(int64(3*i + 2)))
	}
	table := &identityTable{height: height, omicron: traceOmega}

	quotients, err := TerminalQuotients(friDomain, [][]*core.XFieldElement{column}, table)
	if err != nil {
		t.Fatalf("TerminalQuotients: %v", err)
	}

	omicronInv, err := traceOmega.Inv()
	if err != nil {
		t.Fatalf("Inv: %v", err)
	}
	for i := 0; i < friLength; i++ {
		point := friDomain.Point(i)
		zerofier := point.Sub(omicronInv)
		reconstructed := quotients[0][i].MulBase(zerofier)
		if !reconstructed.Equal(column[i]) {
			t.Fatalf("point %d: quotient * zerofier != original constraint evaluation", i)
		}
	}
}

func TestNumQuotientsCountsAllThreeFamilies(t *testing.T) {
	field, _ := testFields(t)
	traceOmega := field.GetPrimitiveRootOfUnity(4)
	table := &identityTable{height: 4, omicron: traceOmega}
	if got := NumQuotients(table); got != 3 {
		t.Fatalf("NumQuotients = %d, want 3 (one boundary + one transition + one terminal)", got)
	}
}

func TestLogNumRows(t *testing.T) {
	field, _ := testFields(t)
	traceOmega := field.GetPrimitiveRootOfUnity(8)
	t.Run("EmptyTable", func(t *testing.T) {
		table := &identityTable{height: 0}
		if got := LogNumRows(table); got != -1 {
			t.Fatalf("LogNumRows(empty) = %d, want -1", got)
		}
	})
	t.Run("ExactPowerOfTwo", func(t *testing.T) {
		table := &identityTable{height: 8, omicron: traceOmega}
		if got := LogNumRows(table); got != 3 {
			t.Fatalf("LogNumRows(8) = %d, want 3", got)
		}
	})
	t.Run("RoundsUp", func(t *testing.T) {
		table := &identityTable{height: 5, omicron: traceOmega}
		if got := LogNumRows(table); got != 3 {
			t.Fatalf("LogNumRows(5) = %d, want 3", got)
		}
	})
}
