// Package stark combines the core substrate, the Fiat-Shamir transcript,
// the FRI engine and the AIR quotient machinery into one end-to-end
// prover/verifier for brainfuck program execution: "this program, run on
// this input, produces this output" backed by a proof that every trace
// table satisfies its boundary, transition and terminal constraints.
//
// Grounded on original_source/code/stark.py's Stark class (prove/verify),
// adapted to this package's simplification of running one independent FRI
// instance per trace table rather than one combined multi-table codeword;
// see DESIGN.md for why.
package stark

import (
	"fmt"
	"sort"

	"github.com/vybium/bf-stark/internal/bfstark/air"
	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/fri"
	"github.com/vybium/bf-stark/internal/bfstark/transcript"
	"github.com/vybium/bf-stark/internal/bfstark/vm"
)

// Params fixes the security and performance parameters shared by every
// table's FRI instance.
type Params struct {
	Field               *core.Field
	XField              *core.XField
	ExpansionFactor     int
	NumColinearityTests int
}

// RowOpening is one revealed trace row plus its salted-Merkle
// authentication path against a TableProof's TraceRoot.
type RowOpening struct {
	Index int
	Row   []*core.FieldElement
	Auth  *core.AuthPath
}

// TableProof is the complete proof artifact for one trace table: its
// public (unpadded) height, a commitment to its low-degree-extended trace
// rows, the opened rows at the FRI query points, and the FRI proof that
// the weighted combination of its constraint-quotient codewords is of
// bounded degree.
type TableProof struct {
	Height    int
	TraceRoot []byte
	Openings  []RowOpening
	Quotient  *fri.Proof
}

// Proof is the complete STARK artifact for one program execution: the
// public program and claimed output, the extension-argument terminal
// values every table's own terminal constraint checks itself against, and
// one TableProof per trace table in the fixed commitment order
// [processor, instruction, memory, input, output].
type Proof struct {
	Program   []*core.FieldElement
	Output    []byte
	Terminals vm.Terminals
	Tables    [5]TableProof
}

// Prove simulates program against input and produces a Proof binding the
// resulting trace tables to their AIR constraints. Right after the
// program and claimed output are pushed to the transcript, it pulls
// vm.NumChallenges extension-field challenges and uses them to build each
// table's extension columns (the permutation argument tying the processor
// and memory tables together, and the evaluation arguments tying the
// processor table to the input and output tables) before committing to
// any table's trace.
func Prove(params Params, program []*core.FieldElement, input []byte) (*Proof, error) {
	tables, output, err := vm.Simulate(program, input)
	if err != nil {
		return nil, fmt.Errorf("stark: prove: simulate: %w", err)
	}

	field, xfield := params.Field, params.XField

	tr := transcript.New()
	tr.PushFieldElements(program)
	tr.Push(output)

	challenges := vm.ChallengesFromScalars(tr.PullXScalars(xfield, vm.NumChallenges))

	procExtra, inputTerminal, outputTerminal, permTerminal := vm.ExtendProcessor(tables.Processor.Rows, xfield, challenges)
	procRows := vm.AppendColumns(tables.Processor.Rows, procExtra)

	memExtra, memPermTerminal := vm.ExtendMemory(tables.Memory.Rows, xfield, challenges)
	memRows := vm.AppendColumns(tables.Memory.Rows, memExtra)

	inExtra, inTerminal := vm.ExtendIO(tables.Input.Rows, xfield, challenges.GammaIn)
	inRows := vm.AppendColumns(tables.Input.Rows, inExtra)

	outExtra, outTerminal := vm.ExtendIO(tables.Output.Rows, xfield, challenges.GammaOut)
	outRows := vm.AppendColumns(tables.Output.Rows, outExtra)

	// A correct trace's memory table compresses to the same running product
	// as the processor table, and each I/O table's own evaluation matches
	// the processor table's gated accumulator for the same stream -- these
	// are the cross-table invariants the permutation and evaluation
	// arguments exist to enforce. Checking them here, in addition to each
	// table's own terminal constraint, catches a witness-construction bug
	// before it ever reaches a proof instead of silently producing one that
	// fails to verify.
	if !memPermTerminal.Equal(permTerminal) {
		return nil, fmt.Errorf("stark: prove: memory table's permutation terminal does not match the processor table's")
	}
	if !inTerminal.Equal(inputTerminal) {
		return nil, fmt.Errorf("stark: prove: input table's evaluation terminal does not match the processor table's")
	}
	if !outTerminal.Equal(outputTerminal) {
		return nil, fmt.Errorf("stark: prove: output table's evaluation terminal does not match the processor table's")
	}

	terminals := vm.Terminals{InputEval: inputTerminal, OutputEval: outputTerminal, MemPerm: permTerminal}

	proof := &Proof{Program: program, Output: output, Terminals: terminals}

	procView := vm.NewProcessorAIR(tables.Processor.Height(), field, xfield, challenges, terminals)
	instrView := vm.NewInstructionAIR(tables.Instruction.Height(), field, xfield)
	memView := vm.NewMemoryAIR(tables.Memory.Height(), field, xfield, challenges, terminals)
	inView := vm.NewIOAIR(tables.Input.Height(), field, xfield, challenges.GammaIn, terminals.InputEval)
	outView := vm.NewIOAIR(tables.Output.Height(), field, xfield, challenges.GammaOut, terminals.OutputEval)

	specs := []struct {
		rows [][]*core.FieldElement
		view air.Table
	}{
		{procRows, procView},
		{tables.Instruction.Rows, instrView},
		{memRows, memView},
		{inRows, inView},
		{outRows, outView},
	}

	for i, s := range specs {
		tp, err := proveTable(params, tr, s.rows, s.view.Width(), s.view)
		if err != nil {
			return nil, fmt.Errorf("stark: prove: table %d: %w", i, err)
		}
		proof.Tables[i] = *tp
	}

	return proof, nil
}

// padRows pads rows up to length n by repeating its last row (or an
// all-zero row, if rows is empty), the low-degree-extension precondition
// that the trace domain's size be a power of two.
func padRows(rows [][]*core.FieldElement, n, width int, field *core.Field) [][]*core.FieldElement {
	out := make([][]*core.FieldElement, n)
	var last []*core.FieldElement
	if len(rows) > 0 {
		last = rows[len(rows)-1]
	} else {
		last = make([]*core.FieldElement, width)
		for j := range last {
			last[j] = field.Zero()
		}
	}
	for i := 0; i < n; i++ {
		if i < len(rows) {
			out[i] = rows[i]
		} else {
			out[i] = last
		}
	}
	return out
}

func proveTable(params Params, tr *transcript.Transcript, rows [][]*core.FieldElement, width int, view air.Table) (*TableProof, error) {
	height := len(rows)
	if height == 0 {
		return &TableProof{Height: 0}, nil
	}

	field, xfield := params.Field, params.XField
	order := nextPow2(height)
	padded := padRows(rows, order, width, field)

	traceOmega := field.GetPrimitiveRootOfUnity(order)
	if traceOmega == nil {
		return nil, fmt.Errorf("stark: prove table: field has no root of unity of order %d", order)
	}
	traceDomain, err := core.NewDomain(field.One(), traceOmega, order)
	if err != nil {
		return nil, fmt.Errorf("stark: prove table: %w", err)
	}

	friLength := order * params.ExpansionFactor
	friOmega := field.GetPrimitiveRootOfUnity(friLength)
	if friOmega == nil {
		return nil, fmt.Errorf("stark: prove table: field has no root of unity of order %d", friLength)
	}
	friDomain, err := core.NewDomain(field.Generator(), friOmega, friLength)
	if err != nil {
		return nil, fmt.Errorf("stark: prove table: %w", err)
	}

	baseCodewords := make([][]*core.FieldElement, width)
	xCodewords := make([][]*core.XFieldElement, width)
	for j := 0; j < width; j++ {
		column := make([]*core.FieldElement, order)
		for i := 0; i < order; i++ {
			column[i] = padded[i][j]
		}
		poly, err := traceDomain.Interpolate(column)
		if err != nil {
			return nil, fmt.Errorf("stark: prove table: column %d: %w", j, err)
		}
		evaluated, err := friDomain.Evaluate(poly)
		if err != nil {
			return nil, fmt.Errorf("stark: prove table: column %d: %w", j, err)
		}
		baseCodewords[j] = evaluated
		lifted := make([]*core.XFieldElement, friLength)
		for i, v := range evaluated {
			lifted[i] = xfield.Lift(v)
		}
		xCodewords[j] = lifted
	}

	leaves := make([][]byte, friLength)
	for i := 0; i < friLength; i++ {
		row := make([]*core.FieldElement, width)
		for j := 0; j < width; j++ {
			row[j] = baseCodewords[j][i]
		}
		leaves[i] = core.FieldElementsToBytes(row)
	}
	traceTree, err := core.NewSaltedMerkleTree(leaves)
	if err != nil {
		return nil, fmt.Errorf("stark: prove table: %w", err)
	}
	tr.PushMerkleRoot(traceTree.Root())

	quotients, err := air.AllQuotients(friDomain, xfield, xCodewords, view)
	if err != nil {
		return nil, fmt.Errorf("stark: prove table: %w", err)
	}
	if len(quotients) == 0 {
		return nil, fmt.Errorf("stark: prove table: table contributes no constraints")
	}

	weights := tr.PullXScalars(xfield, len(quotients))
	combination := make([]*core.XFieldElement, friLength)
	for i := 0; i < friLength; i++ {
		acc := xfield.Zero()
		for l, w := range weights {
			acc = acc.Add(w.Mul(quotients[l][i]))
		}
		combination[i] = acc
	}

	friInstance, err := fri.New(friDomain, xfield, params.ExpansionFactor, params.NumColinearityTests)
	if err != nil {
		return nil, fmt.Errorf("stark: prove table: %w", err)
	}
	quotientProof, topLevelIndices, err := friInstance.Prove(combination, tr)
	if err != nil {
		return nil, fmt.Errorf("stark: prove table: %w", err)
	}

	half := friLength / 2
	step := params.ExpansionFactor
	openSet := make(map[int]bool)
	for _, idx := range topLevelIndices {
		a := idx % half
		b := a + half
		openSet[a] = true
		openSet[b] = true
		// Also open each index's "next row" (step positions ahead in the
		// FRI domain): verifyTable's quotient cross-check needs both rows
		// of every transition constraint it recomputes.
		openSet[(a+step)%friLength] = true
		openSet[(b+step)%friLength] = true
	}
	var openings []RowOpening
	for idx := range openSet {
		auth, err := traceTree.Open(idx)
		if err != nil {
			return nil, fmt.Errorf("stark: prove table: opening row %d: %w", idx, err)
		}
		row := make([]*core.FieldElement, width)
		for j := 0; j < width; j++ {
			row[j] = baseCodewords[j][idx]
		}
		openings = append(openings, RowOpening{Index: idx, Row: row, Auth: auth})
	}
	sort.Slice(openings, func(a, b int) bool { return openings[a].Index < openings[b].Index })

	return &TableProof{Height: height, TraceRoot: traceTree.Root(), Openings: openings, Quotient: quotientProof}, nil
}

// Verify checks a Proof against the program and params it was produced
// for. It replays the transcript (including the extension-field
// challenges pulled right after the program and claimed output, so its
// rebuilt AIR views use the same challenges and publicly claimed
// terminals the prover's did), re-derives every table's FRI domain from
// its publicly declared height, checks each table's FRI proof, the
// authentication paths of its opened rows, and -- per verifyTable --
// recomputes the weighted constraint-quotient value at every FRI-revealed
// index from those opened rows and checks it against the value FRI
// claims there.
func Verify(params Params, proof *Proof) (bool, error) {
	tr := transcript.New()
	tr.PushFieldElements(proof.Program)
	tr.Push(proof.Output)

	field, xfield := params.Field, params.XField
	challenges := vm.ChallengesFromScalars(tr.PullXScalars(xfield, vm.NumChallenges))
	terminals := proof.Terminals

	views := []air.Table{
		vm.NewProcessorAIR(proof.Tables[0].Height, field, xfield, challenges, terminals),
		vm.NewInstructionAIR(proof.Tables[1].Height, field, xfield),
		vm.NewMemoryAIR(proof.Tables[2].Height, field, xfield, challenges, terminals),
		vm.NewIOAIR(proof.Tables[3].Height, field, xfield, challenges.GammaIn, terminals.InputEval),
		vm.NewIOAIR(proof.Tables[4].Height, field, xfield, challenges.GammaOut, terminals.OutputEval),
	}

	for i, view := range views {
		ok, err := verifyTable(params, tr, &proof.Tables[i], view)
		if err != nil {
			return false, fmt.Errorf("stark: verify: table %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func verifyTable(params Params, tr *transcript.Transcript, tp *TableProof, view air.Table) (bool, error) {
	if tp.Height == 0 {
		return true, nil
	}
	field, xfield := params.Field, params.XField
	order := nextPow2(tp.Height)
	friLength := order * params.ExpansionFactor
	friOmega := field.GetPrimitiveRootOfUnity(friLength)
	if friOmega == nil {
		return false, fmt.Errorf("stark: verify table: field has no root of unity of order %d", friLength)
	}
	friDomain, err := core.NewDomain(field.Generator(), friOmega, friLength)
	if err != nil {
		return false, fmt.Errorf("stark: verify table: %w", err)
	}

	tr.PushMerkleRoot(tp.TraceRoot)

	numQuotients := air.NumQuotients(view)
	weights := tr.PullXScalars(xfield, numQuotients)

	friInstance, err := fri.New(friDomain, xfield, params.ExpansionFactor, params.NumColinearityTests)
	if err != nil {
		return false, fmt.Errorf("stark: verify table: %w", err)
	}
	ok, polynomialValues, err := friInstance.Verify(tp.Quotient, tr)
	if err != nil {
		return false, fmt.Errorf("stark: verify table: %w", err)
	}
	if !ok {
		return false, nil
	}

	openingsByIndex := make(map[int][]*core.FieldElement, len(tp.Openings))
	for _, o := range tp.Openings {
		leaf := core.FieldElementsToBytes(o.Row)
		if !core.VerifySaltedPath(tp.TraceRoot, o.Index, leaf, o.Auth) {
			return false, nil
		}
		openingsByIndex[o.Index] = o.Row
	}

	// Recompute the weighted constraint-quotient combination at every
	// FRI-revealed index from the rows opened above, and check it against
	// the value the FRI proof claims there. Without this, a prover could
	// commit to any low-degree codeword at all in place of the real
	// quotient combination and still pass every check above.
	width := view.Width()
	logNumRows := air.LogNumRows(view)
	step := params.ExpansionFactor
	liftRow := func(row []*core.FieldElement) []*core.XFieldElement {
		lifted := make([]*core.XFieldElement, width)
		for j, v := range row {
			lifted[j] = xfield.Lift(v)
		}
		return lifted
	}
	for idx, claimed := range polynomialValues {
		currentRow, ok := openingsByIndex[idx]
		if !ok {
			return false, fmt.Errorf("stark: verify table: FRI revealed index %d with no matching row opening", idx)
		}
		nextRow, ok := openingsByIndex[(idx+step)%friLength]
		if !ok {
			return false, fmt.Errorf("stark: verify table: FRI revealed index %d with no matching next-row opening", idx)
		}
		quotientsAtIdx, err := air.QuotientsAtIndex(friDomain, idx, logNumRows, liftRow(currentRow), liftRow(nextRow), view)
		if err != nil {
			return false, fmt.Errorf("stark: verify table: recomputing quotients at index %d: %w", idx, err)
		}
		if len(quotientsAtIdx) != len(weights) {
			return false, fmt.Errorf("stark: verify table: recomputed %d quotients at index %d, expected %d", len(quotientsAtIdx), idx, len(weights))
		}
		combined := xfield.Zero()
		for l, w := range weights {
			combined = combined.Add(w.Mul(quotientsAtIdx[l]))
		}
		if !combined.Equal(claimed) {
			return false, nil
		}
	}

	return true, nil
}

func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
