// Package air turns an execution trace's extension codewords into the
// boundary, transition and terminal quotient codewords a STARK proves are
// all of low degree. A constraint is expressed directly as a Go closure
// over a row (or row pair) rather than as a symbolic multivariate
// polynomial object, following this repository's "prefer composition over
// deep class hierarchies" design choice -- the teacher's own
// internal/.../protocols/air.go takes the same struct-plus-function shape.
//
// Grounded on original_source/code/table_extension.py's TableExtension:
// boundary_quotients, transition_quotients, terminal_quotients and their
// degree-bound counterparts, reproduced here pointwise over a committed
// FRI-domain codeword exactly as the Python reference computes them.
package air

import "github.com/vybium/bf-stark/internal/bfstark/core"

// Constraint is a single-row constraint (boundary or terminal): it must
// evaluate to zero when applied to the row it targets.
type Constraint struct {
	Eval   func(row []*core.XFieldElement) *core.XFieldElement
	Degree int
}

// TransitionConstraint is a two-row constraint: it must evaluate to zero
// when applied to every (current row, next row) pair in a valid trace.
type TransitionConstraint struct {
	Eval   func(current, next []*core.XFieldElement) *core.XFieldElement
	Degree int
}

// Table is the extension-column view of one trace table (processor,
// memory, instruction, input or output): its width, height, the
// trace-domain generator, and its three constraint families.
type Table interface {
	Width() int
	OriginalWidth() int
	Height() int
	Omicron() *core.FieldElement
	BoundaryConstraints() []Constraint
	TransitionConstraints() []TransitionConstraint
	TerminalConstraints() []Constraint
}

// LogNumRows returns ceil(log2(height)), or -1 for an empty table,
// mirroring table_extension.py's num_quotients height-rounding.
func LogNumRows(table Table) int {
	height := table.Height()
	if height == 0 {
		return -1
	}
	logNumRows := 0
	for 1<<logNumRows < height {
		logNumRows++
	}
	return logNumRows
}
