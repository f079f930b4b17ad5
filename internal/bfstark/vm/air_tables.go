package vm

import (
	"github.com/vybium/bf-stark/internal/bfstark/air"
	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// nextPowerOfTwo returns the smallest power of two >= n, or 1 if n <= 0.
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// omicronFor returns the generator of the smallest subgroup of field whose
// order is a power of two at least as large as height, the trace-domain
// generator every air.Table.Omicron implementation here returns.
func omicronFor(field *core.Field, height int) *core.FieldElement {
	order := nextPowerOfTwo(height)
	if order < 1 {
		order = 1
	}
	root := field.GetPrimitiveRootOfUnity(order)
	if root == nil {
		return field.One()
	}
	return root
}

// Every table's shape (column width, constraint families) is static;
// only its height is data-dependent and is carried as a public value of
// the proof, so the verifier builds the identical air.Table view from
// nothing but that height (plus, for the three tables below that carry
// extension columns, the same Fiat-Shamir-derived challenges and the same
// publicly claimed terminal values the prover committed to) -- it never
// needs the trace rows themselves.

// ProcessorAIR is the air.Table view of a processor table: seven base
// columns (cycle, ip, ci, ni, mp, mv, isZero) plus a padding flag and three
// extension columns (input-read evaluation, output-write evaluation,
// memory-permutation running product) realizing the cross-table
// permutation and evaluation arguments spec.md's Data Model describes.
type ProcessorAIR struct {
	HeightVal  int
	Field      *core.Field
	XField     *core.XField
	Challenges Challenges
	Terminals  Terminals
}

// NewProcessorAIR builds the AIR view for a processor table of the given
// (unpadded) height, the challenges its extension columns were built
// against, and the terminal values it must reach.
func NewProcessorAIR(height int, field *core.Field, xfield *core.XField, challenges Challenges, terminals Terminals) *ProcessorAIR {
	return &ProcessorAIR{HeightVal: height, Field: field, XField: xfield, Challenges: challenges, Terminals: terminals}
}

func (p *ProcessorAIR) Width() int                  { return 17 }
func (p *ProcessorAIR) OriginalWidth() int           { return 7 }
func (p *ProcessorAIR) Height() int                  { return p.HeightVal }
func (p *ProcessorAIR) Omicron() *core.FieldElement { return omicronFor(p.Field, p.HeightVal) }

var _ air.Table = (*ProcessorAIR)(nil)
var _ air.Table = (*MemoryAIR)(nil)
var _ air.Table = (*InstructionAIR)(nil)
var _ air.Table = (*IOAIR)(nil)

// MemoryAIR is the air.Table view of a memory table: three base columns
// (cycle, memory pointer, memory value), rows sorted by memory pointer,
// plus a padding flag and one extension column (the permutation running
// product) that must reach the same terminal value as ProcessorAIR's.
type MemoryAIR struct {
	HeightVal  int
	Field      *core.Field
	XField     *core.XField
	Challenges Challenges
	Terminals  Terminals
}

// NewMemoryAIR builds the AIR view for a memory table of the given height.
func NewMemoryAIR(height int, field *core.Field, xfield *core.XField, challenges Challenges, terminals Terminals) *MemoryAIR {
	return &MemoryAIR{HeightVal: height, Field: field, XField: xfield, Challenges: challenges, Terminals: terminals}
}

func (m *MemoryAIR) Width() int                  { return 7 }
func (m *MemoryAIR) OriginalWidth() int           { return 3 }
func (m *MemoryAIR) Height() int                  { return m.HeightVal }
func (m *MemoryAIR) Omicron() *core.FieldElement { return omicronFor(m.Field, m.HeightVal) }

// InstructionAIR is the air.Table view of an instruction table: three
// columns (instruction pointer, current instruction, next instruction),
// rows sorted by instruction pointer.
type InstructionAIR struct {
	HeightVal int
	Field     *core.Field
	XField    *core.XField
}

// NewInstructionAIR builds the AIR view for an instruction table of the
// given height.
func NewInstructionAIR(height int, field *core.Field, xfield *core.XField) *InstructionAIR {
	return &InstructionAIR{HeightVal: height, Field: field, XField: xfield}
}

func (i *InstructionAIR) Width() int                  { return 3 }
func (i *InstructionAIR) OriginalWidth() int           { return 3 }
func (i *InstructionAIR) Height() int                  { return i.HeightVal }
func (i *InstructionAIR) Omicron() *core.FieldElement { return omicronFor(i.Field, i.HeightVal) }

// IOAIR is the air.Table view of an I/O table (input or output): one base
// column (the byte read or written), plus a padding flag and one
// extension column (the running evaluation under Challenge) that must
// reach Terminal. The same type serves both the input and output tables;
// only the challenge and terminal differ between the two instances.
type IOAIR struct {
	HeightVal int
	Field     *core.Field
	XField    *core.XField
	Challenge *core.XFieldElement
	Terminal  *core.XFieldElement
}

// NewIOAIR builds the AIR view for an I/O table of the given height, the
// evaluation challenge its extension column was folded under, and the
// terminal value it must reach.
func NewIOAIR(height int, field *core.Field, xfield *core.XField, challenge, terminal *core.XFieldElement) *IOAIR {
	return &IOAIR{HeightVal: height, Field: field, XField: xfield, Challenge: challenge, Terminal: terminal}
}

func (io *IOAIR) Width() int                  { return 5 }
func (io *IOAIR) OriginalWidth() int           { return 1 }
func (io *IOAIR) Height() int                  { return io.HeightVal }
func (io *IOAIR) Omicron() *core.FieldElement { return omicronFor(io.Field, io.HeightVal) }
