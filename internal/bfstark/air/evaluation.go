package air

import "github.com/vybium/bf-stark/internal/bfstark/core"

// EvaluationTerminal folds a column of base-field symbols into a single
// extension-field value via Horner's method under a challenge: running :=
// running*challenge + symbol for each symbol in order. This is the
// evaluation argument's terminal value, used to tie the input and output
// tables' recorded bytes to the processor table's reads and writes without
// an explicit permutation check.
//
// Grounded on original_source/code/vm.py's VirtualMachine.evaluation_terminal.
func EvaluationTerminal(symbols []*core.FieldElement, challenge *core.XFieldElement) *core.XFieldElement {
	xfield := challenge.Field()
	running := xfield.Zero()
	for _, symbol := range symbols {
		running = running.Mul(challenge).Add(xfield.Lift(symbol))
	}
	return running
}
