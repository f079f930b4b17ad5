package vm

import "github.com/vybium/bf-stark/internal/bfstark/core"

// NumChallenges is how many extension-field challenges the prover and
// verifier must pull, in lockstep, before the cross-table permutation and
// evaluation argument extension columns can be built. original_source/'s
// vm.py pulls eleven, supporting a richer set of arguments (including an
// instruction-table permutation); this package wires five, covering the
// input/output evaluation arguments and the memory/processor permutation
// argument documented in DESIGN.md, leaving the instruction-table half of
// that invariant as documented future work.
const NumChallenges = 5

// Challenges names the five extension-field values pulled from the
// transcript right after the program and claimed output are pushed, before
// any table's own trace commitment -- shared by every table that builds an
// extension column, so prover and verifier derive identical ones.
type Challenges struct {
	// GammaIn and GammaOut are the Horner-fold challenges for the input and
	// output evaluation arguments, respectively.
	GammaIn, GammaOut *core.XFieldElement
	// CompressMP and CompressMV weight the memory pointer and memory value
	// coordinates of a processor/memory row into one extension-field
	// scalar (compressRow); cycle carries a fixed weight of one since it is
	// already unique per row.
	CompressMP, CompressMV *core.XFieldElement
	// Gamma is the running-product challenge for the memory permutation
	// argument.
	Gamma *core.XFieldElement
}

// Terminals collects the extension-argument terminal values a prover
// publishes alongside a proof, so the verifier can rebuild identical AIR
// views without ever seeing the trace: the input and output evaluation
// arguments' final accumulator values, and the memory-permutation
// argument's final running product. Each is independently checked, on
// each side of its argument, by that table's own terminal constraint --
// InputEvalTerminal against both the processor table's inputEval column
// and the input table's evalRunning column, and so on -- so equality
// across tables never needs cross-table FRI coordination, only these
// shared public scalars.
type Terminals struct {
	InputEval  *core.XFieldElement
	OutputEval *core.XFieldElement
	MemPerm    *core.XFieldElement
}

// ChallengesFromScalars assigns NumChallenges pulled scalars to their named
// roles, in the fixed order Prove and Verify pull them in.
func ChallengesFromScalars(scalars []*core.XFieldElement) Challenges {
	return Challenges{
		GammaIn:    scalars[0],
		GammaOut:   scalars[1],
		CompressMP: scalars[2],
		CompressMV: scalars[3],
		Gamma:      scalars[4],
	}
}

// moreColumn builds a table's padding-detector column: one at every row
// except the last, zero at the last row. Every gated extension-column
// update below is switched off by "current row's more is zero", so once a
// table is padded to a power of two for its low-degree extension (padRows
// repeats the last row, whose more is already zero), the gated columns
// freeze at their real terminal value instead of drifting through the
// padding.
func moreColumn(field *core.Field, height int) []*core.FieldElement {
	out := make([]*core.FieldElement, height)
	for i := range out {
		if i < height-1 {
			out[i] = field.One()
		} else {
			out[i] = field.Zero()
		}
	}
	return out
}

// compressRow folds a (cycle, memory pointer, memory value) triple into one
// extension-field scalar under the given weights. Used identically by the
// processor table's own (cycle, mp, mv) projection and by the memory
// table's (cycle, mp, mv) columns, so that matching rows compress to the
// same value regardless of which table they are read from.
func compressRow(xfield *core.XField, cycle, mp, mv *core.FieldElement, compressMP, compressMV *core.XFieldElement) *core.XFieldElement {
	return xfield.Lift(cycle).Add(xfield.Lift(mp).Mul(compressMP)).Add(xfield.Lift(mv).Mul(compressMV))
}

// ExtendProcessor computes the processor table's padding flag and its three
// extension columns -- the input-read running evaluation, the
// output-write running evaluation, and the memory-permutation running
// product -- returning them as ten extra base-field columns per row (one
// flag column, then three coefficients per extension column, in the order
// [more, inputEval0..2, outputEval0..2, permProduct0..2]) to append
// alongside the table's seven base columns, plus the three terminal values
// a correct prover's processor table must reach.
func ExtendProcessor(rows [][]*core.FieldElement, xfield *core.XField, ch Challenges) (extra [][]*core.FieldElement, inputTerminal, outputTerminal, permTerminal *core.XFieldElement) {
	height := len(rows)
	if height == 0 {
		return nil, xfield.Zero(), xfield.Zero(), xfield.Zero()
	}
	more := moreColumn(xfield.Base(), height)
	extra = make([][]*core.FieldElement, height)

	inputEval := xfield.Zero()
	outputEval := xfield.Zero()
	permProduct := ch.Gamma.Sub(compressRow(xfield, rows[0][procCycle], rows[0][procMP], rows[0][procMV], ch.CompressMP, ch.CompressMV))

	writeRow := func(i int) {
		ic := inputEval.Coefficients()
		oc := outputEval.Coefficients()
		pc := permProduct.Coefficients()
		extra[i] = []*core.FieldElement{
			more[i],
			ic[0], ic[1], ic[2],
			oc[0], oc[1], oc[2],
			pc[0], pc[1], pc[2],
		}
	}
	writeRow(0)

	for i := 1; i < height; i++ {
		prev := rows[i-1]
		cur := rows[i]
		if !more[i-1].IsZero() {
			switch byte(prev[procCI].Big().Int64()) {
			case OpInput:
				inputEval = inputEval.Mul(ch.GammaIn).Add(xfield.Lift(cur[procMV]))
			case OpOutput:
				outputEval = outputEval.Mul(ch.GammaOut).Add(xfield.Lift(prev[procMV]))
			}
			compressed := compressRow(xfield, cur[procCycle], cur[procMP], cur[procMV], ch.CompressMP, ch.CompressMV)
			permProduct = permProduct.Mul(ch.Gamma.Sub(compressed))
		}
		writeRow(i)
	}

	return extra, inputEval, outputEval, permProduct
}

// ExtendMemory computes the memory table's padding flag and its one
// extension column, the permutation running product, using the same
// compress weights and running-product challenge as ExtendProcessor over
// the memory table's own (cycle, mp, mv) columns. Returns four extra
// base-field columns per row ([more, permProduct0..2]) and the terminal
// value, which a correct prover's processor table must reach too.
func ExtendMemory(rows [][]*core.FieldElement, xfield *core.XField, ch Challenges) (extra [][]*core.FieldElement, permTerminal *core.XFieldElement) {
	height := len(rows)
	if height == 0 {
		return nil, xfield.Zero()
	}
	more := moreColumn(xfield.Base(), height)
	extra = make([][]*core.FieldElement, height)

	permProduct := ch.Gamma.Sub(compressRow(xfield, rows[0][memCycle], rows[0][memMP], rows[0][memMV], ch.CompressMP, ch.CompressMV))
	writeRow := func(i int) {
		pc := permProduct.Coefficients()
		extra[i] = []*core.FieldElement{more[i], pc[0], pc[1], pc[2]}
	}
	writeRow(0)

	for i := 1; i < height; i++ {
		if !more[i-1].IsZero() {
			cur := rows[i]
			compressed := compressRow(xfield, cur[memCycle], cur[memMP], cur[memMV], ch.CompressMP, ch.CompressMV)
			permProduct = permProduct.Mul(ch.Gamma.Sub(compressed))
		}
		writeRow(i)
	}

	return extra, permProduct
}

// ExtendIO computes an I/O table's padding flag and its one extension
// column, the running evaluation of its single byte column under
// challenge (the same Horner fold as air.EvaluationTerminal). Returns four
// extra base-field columns per row ([more, evalRunning0..2]) and the
// terminal value, which the matching gated column on the processor table
// must reach too.
func ExtendIO(rows [][]*core.FieldElement, xfield *core.XField, challenge *core.XFieldElement) (extra [][]*core.FieldElement, terminal *core.XFieldElement) {
	height := len(rows)
	if height == 0 {
		return nil, xfield.Zero()
	}
	more := moreColumn(xfield.Base(), height)
	extra = make([][]*core.FieldElement, height)

	running := xfield.Lift(rows[0][0])
	writeRow := func(i int) {
		c := running.Coefficients()
		extra[i] = []*core.FieldElement{more[i], c[0], c[1], c[2]}
	}
	writeRow(0)

	for i := 1; i < height; i++ {
		if !more[i-1].IsZero() {
			running = running.Mul(challenge).Add(xfield.Lift(rows[i][0]))
		}
		writeRow(i)
	}

	return extra, running
}

// AppendColumns concatenates each row of rows with the corresponding row of
// extra, producing the widened rows a table's extension pass commits to.
func AppendColumns(rows, extra [][]*core.FieldElement) [][]*core.FieldElement {
	out := make([][]*core.FieldElement, len(rows))
	for i, row := range rows {
		combined := make([]*core.FieldElement, 0, len(row)+len(extra[i]))
		combined = append(combined, row...)
		combined = append(combined, extra[i]...)
		out[i] = combined
	}
	return out
}
