package vm

import (
	"github.com/vybium/bf-stark/internal/bfstark/air"
	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// column indices into an I/O-table row: the one base column (the byte
// read or written), the padding flag, and the running-evaluation
// column's coefficient triple.
const (
	ioSymbol = iota
	ioMore
	ioEval
)

// BoundaryConstraints pins the padding flag to its starting value and the
// running evaluation to the first symbol itself -- the same seed
// air.EvaluationTerminal's Horner fold starts from.
func (io *IOAIR) BoundaryConstraints() []air.Constraint {
	xfield := io.XField
	moreStart := air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			return row[ioMore].Sub(moreBoundaryTarget(xfield, io.HeightVal))
		},
	}
	evalStart := air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			return reconstructExt(xfield, row, ioEval).Sub(row[ioSymbol])
		},
	}
	return []air.Constraint{moreStart, evalStart}
}

// TransitionConstraints enforces the padding flag's shape and folds the
// next row's symbol into the running evaluation, gated by the current
// row's padding flag so the accumulator freezes once real symbols run
// out.
func (io *IOAIR) TransitionConstraints() []air.TransitionConstraint {
	xfield := io.XField
	challenge := io.Challenge

	evalStep := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			held := reconstructExt(xfield, current, ioEval)
			updated := held.Mul(challenge).Add(next[ioSymbol])
			expected := held.Add(current[ioMore].Mul(updated.Sub(held)))
			return reconstructExt(xfield, next, ioEval).Sub(expected)
		},
	}

	constraints := []air.TransitionConstraint{evalStep}
	constraints = append(constraints, moreGatingConstraints(xfield, ioMore)...)
	return constraints
}

// TerminalConstraints requires the padding flag to have dropped to zero
// and the running evaluation to have reached the terminal value the
// matching gated column on the processor table must reach too.
func (io *IOAIR) TerminalConstraints() []air.Constraint {
	xfield := io.XField
	return []air.Constraint{
		equalsConstant(ioMore, xfield.Zero()),
		equalsConstantWide(xfield, ioEval, io.Terminal),
	}
}
