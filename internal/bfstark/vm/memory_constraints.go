package vm

import "github.com/vybium/bf-stark/internal/bfstark/air"
import "github.com/vybium/bf-stark/internal/bfstark/core"

// column indices into a memory-table row: the three base columns (cycle,
// mp, mv), the padding flag, and the permutation running product's
// coefficient triple.
const (
	memCycle = iota
	memMP
	memMV
	memMore
	memPermProduct
)

// BoundaryConstraints pins the first row (which Simulate always emits
// before sorting, so it never moves: no other row can have mp <= 0 and
// cycle 0 simultaneously) to the all-zero state, the padding flag to its
// starting value, and the permutation running product to its seeded
// starting factor -- the same seed ProcessorAIR's own boundary constraint
// requires of row zero, since both tables compress the identical
// (cycle, mp, mv) triple at their first row.
func (m *MemoryAIR) BoundaryConstraints() []air.Constraint {
	xfield := m.XField
	zeroColumn := func(col int) air.Constraint {
		return air.Constraint{
			Eval:   func(row []*core.XFieldElement) *core.XFieldElement { return row[col] },
			Degree: 1,
		}
	}
	moreStart := air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			return row[memMore].Sub(moreBoundaryTarget(xfield, m.HeightVal))
		},
	}
	permStart := air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			compressed := compressRowX(row[memCycle], row[memMP], row[memMV], m.Challenges.CompressMP, m.Challenges.CompressMV)
			seed := m.Challenges.Gamma.Sub(compressed)
			return reconstructExt(xfield, row, memPermProduct).Sub(seed)
		},
	}
	return []air.Constraint{zeroColumn(memCycle), zeroColumn(memMP), zeroColumn(memMV), moreStart, permStart}
}

// TransitionConstraints enforces the two invariants a memory-pointer-sorted
// trace must satisfy: the pointer either holds or advances by exactly one
// row to row, and whenever it advances to a fresh cell that cell reads as
// zero (a brand new tape cell has never been written).
func (m *MemoryAIR) TransitionConstraints() []air.TransitionConstraint {
	one := m.XField.One()

	pointerHoldsOrAdvances := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			step := next[memMP].Sub(current[memMP])
			return step.Mul(step.Sub(one))
		},
	}

	freshCellIsZero := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			step := next[memMP].Sub(current[memMP])
			return step.Mul(next[memMV])
		},
	}

	xfield := m.XField
	ch := m.Challenges
	permProductStep := air.TransitionConstraint{
		Degree: 3,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			compressed := compressRowX(next[memCycle], next[memMP], next[memMV], ch.CompressMP, ch.CompressMV)
			updated := reconstructExt(xfield, current, memPermProduct).Mul(ch.Gamma.Sub(compressed))
			held := reconstructExt(xfield, current, memPermProduct)
			expected := held.Add(current[memMore].Mul(updated.Sub(held)))
			return reconstructExt(xfield, next, memPermProduct).Sub(expected)
		},
	}

	constraints := []air.TransitionConstraint{pointerHoldsOrAdvances, freshCellIsZero, permProductStep}
	constraints = append(constraints, moreGatingConstraints(xfield, memMore)...)
	return constraints
}

// TerminalConstraints requires the padding flag to have dropped to zero
// and the permutation running product to have reached the terminal value
// ProcessorAIR's own matching constraint requires too.
func (m *MemoryAIR) TerminalConstraints() []air.Constraint {
	xfield := m.XField
	return []air.Constraint{
		equalsConstant(memMore, xfield.Zero()),
		equalsConstantWide(xfield, memPermProduct, m.Terminals.MemPerm),
	}
}
