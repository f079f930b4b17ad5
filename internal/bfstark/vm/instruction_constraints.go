package vm

import "github.com/vybium/bf-stark/internal/bfstark/air"
import "github.com/vybium/bf-stark/internal/bfstark/core"

// column indices into an instruction-table row: [ip, ci, ni].
const (
	instrIP = iota
	instrCI
	instrNI
)

// BoundaryConstraints pins the first row's instruction pointer to zero: the
// program always starts at cell zero, and nothing sorts below it.
func (i *InstructionAIR) BoundaryConstraints() []air.Constraint {
	return []air.Constraint{{
		Eval:   func(row []*core.XFieldElement) *core.XFieldElement { return row[instrIP] },
		Degree: 1,
	}}
}

// TransitionConstraints enforces that the table (sorted by ip) only ever
// holds its pointer or advances it by one, and that whenever it holds, the
// recorded instruction and next-instruction must agree -- every row
// pointing at the same program cell must describe the same cell.
func (i *InstructionAIR) TransitionConstraints() []air.TransitionConstraint {
	one := i.XField.One()

	pointerHoldsOrAdvances := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			step := next[instrIP].Sub(current[instrIP])
			return step.Mul(step.Sub(one))
		},
	}

	sameCellAgrees := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			step := next[instrIP].Sub(current[instrIP])
			return step.Sub(one).Mul(next[instrCI].Sub(current[instrCI]))
		},
	}

	sameCellNextAgrees := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			step := next[instrIP].Sub(current[instrIP])
			return step.Sub(one).Mul(next[instrNI].Sub(current[instrNI]))
		},
	}

	return []air.TransitionConstraint{pointerHoldsOrAdvances, sameCellAgrees, sameCellNextAgrees}
}

// TerminalConstraints is empty: the instruction table's last row carries no
// required state beyond the transition invariants.
func (i *InstructionAIR) TerminalConstraints() []air.Constraint { return nil }
