package vm

import "github.com/vybium/bf-stark/internal/bfstark/air"
import "github.com/vybium/bf-stark/internal/bfstark/core"

// column indices into a processor-table row: the seven base columns
// (cycle, ip, ci, ni, mp, mv, isZero), the padding flag, and the three
// extension columns' coefficient triples (input evaluation, output
// evaluation, memory-permutation running product).
const (
	procCycle = iota
	procIP
	procCI
	procNI
	procMP
	procMV
	procIsZero
	procMore
	procInputEval
	procOutputEval = procInputEval + 3
	procPermProduct = procOutputEval + 3
)

// ipDelta and mpDelta give each opcode's instruction-pointer and
// memory-pointer offset for the deterministic, data-independent
// instructions. '[' and ']' are absent from ipDelta: their jump target
// depends on the program's embedded operand, not a fixed offset, so no
// transition constraint here constrains their ip step (see
// instructionIndicator's doc comment for why this file's per-instruction
// relations are hand-authored rather than transcribed).
var ipDelta = map[byte]int64{
	OpIncrementPointer: 1, OpDecrementPointer: 1, OpIncrementValue: 1,
	OpDecrementValue: 1, OpOutput: 1, OpInput: 1,
}

var mpDelta = map[byte]int64{
	OpIncrementPointer: 1, OpDecrementPointer: -1, OpIncrementValue: 0,
	OpDecrementValue: 0, OpOutput: 0, OpInput: 0, OpLoopOpen: 0, OpLoopClose: 0,
}

// BoundaryConstraints pins cycle, instruction pointer, memory pointer and
// memory value to zero at the first row, the padding flag to its starting
// value, the two evaluation-argument accumulators to zero (nothing read
// or written before the first cycle), and the permutation running product
// to its seeded starting factor.
func (p *ProcessorAIR) BoundaryConstraints() []air.Constraint {
	xfield := p.XField
	zeroColumn := func(col int) air.Constraint {
		return air.Constraint{
			Eval:   func(row []*core.XFieldElement) *core.XFieldElement { return row[col] },
			Degree: 1,
		}
	}
	moreStart := air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			return row[procMore].Sub(moreBoundaryTarget(xfield, p.HeightVal))
		},
	}
	permStart := air.Constraint{
		Degree: 1,
		Eval: func(row []*core.XFieldElement) *core.XFieldElement {
			compressed := compressRowX(row[procCycle], row[procMP], row[procMV], p.Challenges.CompressMP, p.Challenges.CompressMV)
			seed := p.Challenges.Gamma.Sub(compressed)
			return reconstructExt(xfield, row, procPermProduct).Sub(seed)
		},
	}
	return []air.Constraint{
		zeroColumn(procCycle), zeroColumn(procIP), zeroColumn(procMP), zeroColumn(procMV),
		moreStart,
		equalsConstantWide(xfield, procInputEval, xfield.Zero()),
		equalsConstantWide(xfield, procOutputEval, xfield.Zero()),
		permStart,
	}
}

// TransitionConstraints enforces cycle monotonicity, the deterministic
// per-opcode ip/mp steps (gated by instructionIndicator so only the active
// opcode's relation is live on any given row), and that isZero and memory
// value never simultaneously claim "nonzero and zero".
func (p *ProcessorAIR) TransitionConstraints() []air.TransitionConstraint {
	base := p.Field
	xfield := p.XField

	cycleStep := air.TransitionConstraint{
		Degree: 1,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			return next[procCycle].Sub(current[procCycle]).Sub(xfield.One())
		},
	}

	ipStep := air.TransitionConstraint{
		Degree: len(instructionAlphabet),
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			sum := xfield.Zero()
			for opcode, delta := range ipDelta {
				target := instructionIndicator(xfield, base, current[procCI], opcode)
				expected := current[procIP].Add(xfield.Lift(base.NewElementFromInt64(delta)))
				sum = sum.Add(target.Mul(next[procIP].Sub(expected)))
			}
			return sum
		},
	}

	mpStep := air.TransitionConstraint{
		Degree: len(instructionAlphabet),
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			sum := xfield.Zero()
			for opcode, delta := range mpDelta {
				target := instructionIndicator(xfield, base, current[procCI], opcode)
				expected := current[procMP].Add(xfield.Lift(base.NewElementFromInt64(delta)))
				sum = sum.Add(target.Mul(next[procMP].Sub(expected)))
			}
			return sum
		},
	}

	isZeroConsistency := air.TransitionConstraint{
		Degree: 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			return current[procIsZero].Mul(current[procMV])
		},
	}

	ch := p.Challenges
	alphabet := len(instructionAlphabet)

	inputEvalStep := air.TransitionConstraint{
		Degree: alphabet + 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			indicator := instructionIndicator(xfield, base, current[procCI], OpInput)
			gated := current[procMore].Mul(indicator)
			updated := reconstructExt(xfield, current, procInputEval).Mul(ch.GammaIn).Add(next[procMV])
			held := reconstructExt(xfield, current, procInputEval)
			expected := held.Add(gated.Mul(updated.Sub(held)))
			return reconstructExt(xfield, next, procInputEval).Sub(expected)
		},
	}

	outputEvalStep := air.TransitionConstraint{
		Degree: alphabet + 2,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			indicator := instructionIndicator(xfield, base, current[procCI], OpOutput)
			gated := current[procMore].Mul(indicator)
			updated := reconstructExt(xfield, current, procOutputEval).Mul(ch.GammaOut).Add(current[procMV])
			held := reconstructExt(xfield, current, procOutputEval)
			expected := held.Add(gated.Mul(updated.Sub(held)))
			return reconstructExt(xfield, next, procOutputEval).Sub(expected)
		},
	}

	permProductStep := air.TransitionConstraint{
		Degree: 3,
		Eval: func(current, next []*core.XFieldElement) *core.XFieldElement {
			compressed := compressRowX(next[procCycle], next[procMP], next[procMV], ch.CompressMP, ch.CompressMV)
			updated := reconstructExt(xfield, current, procPermProduct).Mul(ch.Gamma.Sub(compressed))
			held := reconstructExt(xfield, current, procPermProduct)
			expected := held.Add(current[procMore].Mul(updated.Sub(held)))
			return reconstructExt(xfield, next, procPermProduct).Sub(expected)
		},
	}

	constraints := []air.TransitionConstraint{cycleStep, ipStep, mpStep, isZeroConsistency, inputEvalStep, outputEvalStep, permProductStep}
	constraints = append(constraints, moreGatingConstraints(xfield, procMore)...)
	return constraints
}

// TerminalConstraints requires the current instruction at the last row to
// be zero (the halt marker Simulate appends once the instruction pointer
// runs past the end of the program), the padding flag to have dropped to
// zero, and the three extension columns to have reached their publicly
// claimed terminal values.
func (p *ProcessorAIR) TerminalConstraints() []air.Constraint {
	xfield := p.XField
	return []air.Constraint{
		{
			Eval:   func(row []*core.XFieldElement) *core.XFieldElement { return row[procCI] },
			Degree: 1,
		},
		equalsConstant(procMore, xfield.Zero()),
		equalsConstantWide(xfield, procInputEval, p.Terminals.InputEval),
		equalsConstantWide(xfield, procOutputEval, p.Terminals.OutputEval),
		equalsConstantWide(xfield, procPermProduct, p.Terminals.MemPerm),
	}
}
