// Package vm compiles brainfuck-like programs (`+ - < > [ ] . ,`) and
// simulates them into the five trace tables (processor, memory,
// instruction, input, output) the AIR and FRI layers prove properties of.
//
// Grounded on original_source/code/vm.py's VirtualMachine and Register,
// with table shapes named after the teacher's vm/processor_table.go,
// vm/tables.go conventions (ProcessorTable, MemoryTable, InstructionTable,
// IOTable).
package vm

import "github.com/vybium/bf-stark/internal/bfstark/core"

// Register is the VM's state after executing zero or more instructions: one
// row of the processor table.
type Register struct {
	Cycle              *core.FieldElement
	InstructionPointer *core.FieldElement
	CurrentInstruction *core.FieldElement
	NextInstruction    *core.FieldElement
	MemoryPointer      *core.FieldElement
	MemoryValue        *core.FieldElement
	IsZero             *core.FieldElement
}

// NewRegister returns the all-zero initial register, with IsZero set since
// a fresh tape cell reads as zero.
func NewRegister(field *core.Field) *Register {
	return &Register{
		Cycle:              field.Zero(),
		InstructionPointer: field.Zero(),
		CurrentInstruction: field.Zero(),
		NextInstruction:    field.Zero(),
		MemoryPointer:      field.Zero(),
		MemoryValue:        field.Zero(),
		IsZero:             field.One(),
	}
}

// Row returns the register as a processor-table row, in the fixed column
// order [cycle, ip, ci, ni, mp, mv, isZero].
func (r *Register) Row() []*core.FieldElement {
	return []*core.FieldElement{r.Cycle, r.InstructionPointer, r.CurrentInstruction, r.NextInstruction, r.MemoryPointer, r.MemoryValue, r.IsZero}
}
