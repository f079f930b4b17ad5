package vm

import (
	"github.com/vybium/bf-stark/internal/bfstark/air"
	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// instructionAlphabet lists every recognized opcode byte, in the fixed order
// every instruction-indicator polynomial below is built against.
var instructionAlphabet = []byte{
	OpIncrementPointer, OpDecrementPointer, OpIncrementValue, OpDecrementValue,
	OpOutput, OpInput, OpLoopOpen, OpLoopClose,
}

// instructionIndicator returns a polynomial in ci (degree len(alphabet)-1)
// that evaluates to one when ci equals target and zero when ci equals any
// other recognized opcode: the standard Lagrange-indicator trick of
// dividing the product of (ci - other) over every other alphabet symbol by
// its value at ci = target.
//
// This (and the per-instruction transition relations it gates in
// processorTransitionConstraints) is authored from general brainfuck-AIR
// design knowledge rather than transcribed from a reference file: see
// DESIGN.md for why original_source/ has no per-table Python source to
// ground this against directly.
func instructionIndicator(xfield *core.XField, base *core.Field, ci *core.XFieldElement, target byte) *core.XFieldElement {
	numerator := xfield.One()
	denominator := base.One()
	targetElem := base.NewElementFromInt64(int64(target))
	for _, other := range instructionAlphabet {
		if other == target {
			continue
		}
		otherElem := base.NewElementFromInt64(int64(other))
		numerator = numerator.Mul(ci.Sub(xfield.Lift(otherElem)))
		denominator = denominator.Mul(targetElem.Sub(otherElem))
	}
	denominatorInv, err := denominator.Inv()
	if err != nil {
		return xfield.Zero()
	}
	return numerator.MulBase(denominatorInv)
}

// moreBoundaryTarget is the value a table's "more real rows follow" flag
// must take at row zero: one, unless the table has only a single real row
// (height <= 1), in which case there is no real transition out of it at
// all and the flag starts already at zero.
func moreBoundaryTarget(xfield *core.XField, height int) *core.XFieldElement {
	if height > 1 {
		return xfield.One()
	}
	return xfield.Zero()
}

// moreGatingConstraints returns the two transition constraints every gated
// extension column's padding flag must satisfy: boolean-valued, and never
// increasing (it may drop from one to zero exactly once, marking the last
// real row, and never rises again).
func moreGatingConstraints(xfield *core.XField, moreCol int) []air.TransitionConstraint {
	one := xfield.One()
	isBoolean := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, _ []*core.XFieldElement) *core.XFieldElement {
			return current[moreCol].Mul(current[moreCol].Sub(one))
		},
	}
	neverIncreases := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			delta := current[moreCol].Sub(next[moreCol])
			return delta.Mul(delta.Sub(one))
		},
	}
	return []air.TransitionConstraint{isBoolean, neverIncreases}
}

// reconstructExt reads the three consecutive lifted coefficient columns
// starting at col0 and rebuilds the single extension-field value they
// represent. Every extension column in this package is stored as three
// base-field columns (one per coefficient) so it rides through the same
// base-field LDE and Merkle commitment pipeline as every other column;
// this is the inverse of that split, used wherever a constraint needs the
// combined value rather than its individual coefficients.
func reconstructExt(xfield *core.XField, row []*core.XFieldElement, col0 int) *core.XFieldElement {
	return xfield.NewElement(row[col0].Unlift(), row[col0+1].Unlift(), row[col0+2].Unlift())
}

// compressRowX folds an already-lifted (cycle, mp, mv) row projection into
// one extension-field scalar, the AIR-constraint-side counterpart of
// compressRow (which operates on raw base-field witness values): both
// must agree so a processor row and its matching memory row compress to
// the same scalar regardless of which side computes it.
func compressRowX(cycle, mp, mv *core.XFieldElement, compressMP, compressMV *core.XFieldElement) *core.XFieldElement {
	return cycle.Add(mp.Mul(compressMP)).Add(mv.Mul(compressMV))
}

// equalsConstant builds a single-row constraint pinning row[col] to target,
// the shape every terminal-equality check (extension column reaches a
// publicly claimed terminal value) below is built from.
func equalsConstant(col int, target *core.XFieldElement) air.Constraint {
	return air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			return row[col].Sub(target)
		},
	}
}

// equalsConstantWide is equalsConstant for a three-column extension value:
// it reconstructs the combined value starting at col0 before comparing
// against target.
func equalsConstantWide(xfield *core.XField, col0 int, target *core.XFieldElement) air.Constraint {
	return air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			return reconstructExt(xfield, row, col0).Sub(target)
		},
	}
}
