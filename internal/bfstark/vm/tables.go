package vm

import "github.com/vybium/bf-stark/internal/bfstark/core"

// Trace is a rectangular table of base-field values: Width columns, one row
// per cycle (or per program cell, for the static part of the instruction
// table). Every concrete table type below wraps a Trace with its known
// column count.
type Trace struct {
	Rows  [][]*core.FieldElement
	width int
}

// NewTrace builds an empty trace of the given column width.
func NewTrace(width int) *Trace { return &Trace{width: width} }

// Width returns the number of columns.
func (t *Trace) Width() int { return t.width }

// Height returns the number of rows.
func (t *Trace) Height() int { return len(t.Rows) }

// Append adds one row. Its length must equal Width.
func (t *Trace) Append(row []*core.FieldElement) { t.Rows = append(t.Rows, row) }

// Column extracts column j across every row.
func (t *Trace) Column(j int) []*core.FieldElement {
	out := make([]*core.FieldElement, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[j]
	}
	return out
}

// ProcessorTable columns: [cycle, instruction_pointer, current_instruction,
// next_instruction, memory_pointer, memory_value, is_zero].
type ProcessorTable struct{ *Trace }

// NewProcessorTable returns an empty processor table.
func NewProcessorTable() *ProcessorTable { return &ProcessorTable{NewTrace(7)} }

// MemoryTable columns: [cycle, memory_pointer, memory_value].
type MemoryTable struct{ *Trace }

// NewMemoryTable returns an empty memory table.
func NewMemoryTable() *MemoryTable { return &MemoryTable{NewTrace(3)} }

// InstructionTable columns: [instruction_pointer, current_instruction,
// next_instruction].
type InstructionTable struct{ *Trace }

// NewInstructionTable returns an empty instruction table.
func NewInstructionTable() *InstructionTable { return &InstructionTable{NewTrace(3)} }

// IOTable has a single column: the byte read or written.
type IOTable struct{ *Trace }

// NewIOTable returns an empty I/O table.
func NewIOTable() *IOTable { return &IOTable{NewTrace(1)} }

// Tables bundles every trace produced by one Simulate call, in the fixed
// order [processor, instruction, memory, input, output] the combined STARK
// codeword commits to them in.
type Tables struct {
	Processor   *ProcessorTable
	Instruction *InstructionTable
	Memory      *MemoryTable
	Input       *IOTable
	Output      *IOTable
}
