package vm

import (
	"fmt"
	"sort"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// Simulate is the authoritative trace builder: it executes program against
// input and records every register transition into the five trace tables,
// then stably sorts the memory table by memory pointer and the
// instruction table by instruction pointer (post-processing steps that turn
// "table rows in execution order" into "table rows a permutation argument
// can match against a sorted reference table").
//
// Grounded on original_source/code/vm.py's VirtualMachine.simulate.
func Simulate(program []*core.FieldElement, input []byte) (*Tables, []byte, error) {
	if len(program) == 0 {
		return nil, nil, fmt.Errorf("vm: simulate: empty program")
	}
	field := program[0].Field()
	zero := field.Zero()
	one := field.One()
	two := field.NewElementFromInt64(2)

	reg := NewRegister(field)
	reg.CurrentInstruction = program[0]
	if len(program) > 1 {
		reg.NextInstruction = program[1]
	}
	memory := make(map[string]*core.FieldElement)
	var output []byte
	inputPos := 0

	processor := NewProcessorTable()
	processor.Append(reg.Row())

	memoryTable := NewMemoryTable()
	memoryTable.Append([]*core.FieldElement{reg.Cycle, reg.MemoryPointer, reg.MemoryValue})

	instruction := NewInstructionTable()
	for i := 0; i < len(program)-1; i++ {
		instruction.Append([]*core.FieldElement{field.NewElementFromInt64(int64(i)), program[i], program[i+1]})
	}
	instruction.Append([]*core.FieldElement{field.NewElementFromInt64(int64(len(program) - 1)), program[len(program)-1], field.Zero()})

	inputTable := NewIOTable()
	outputTable := NewIOTable()

	memAt := func(p *core.FieldElement) *core.FieldElement {
		if v, ok := memory[p.String()]; ok {
			return v
		}
		return zero
	}

	for reg.InstructionPointer.Big().Int64() < int64(len(program)) {
		ip := int(reg.InstructionPointer.Big().Int64())
		switch byte(reg.CurrentInstruction.Big().Int64()) {
		case OpLoopOpen:
			if reg.MemoryValue.IsZero() {
				reg.InstructionPointer = program[ip+1]
			} else {
				reg.InstructionPointer = reg.InstructionPointer.Add(two)
			}
		case OpLoopClose:
			if !reg.MemoryValue.IsZero() {
				reg.InstructionPointer = program[ip+1]
			} else {
				reg.InstructionPointer = reg.InstructionPointer.Add(two)
			}
		case OpDecrementPointer:
			reg.InstructionPointer = reg.InstructionPointer.Add(one)
			reg.MemoryPointer = reg.MemoryPointer.Sub(one)
		case OpIncrementPointer:
			reg.InstructionPointer = reg.InstructionPointer.Add(one)
			reg.MemoryPointer = reg.MemoryPointer.Add(one)
		case OpIncrementValue:
			reg.InstructionPointer = reg.InstructionPointer.Add(one)
			memory[reg.MemoryPointer.String()] = memAt(reg.MemoryPointer).Add(one)
		case OpDecrementValue:
			reg.InstructionPointer = reg.InstructionPointer.Add(one)
			memory[reg.MemoryPointer.String()] = memAt(reg.MemoryPointer).Sub(one)
		case OpOutput:
			reg.InstructionPointer = reg.InstructionPointer.Add(one)
			outputTable.Append([]*core.FieldElement{memAt(reg.MemoryPointer)})
			output = append(output, byte(memAt(reg.MemoryPointer).Big().Int64()%256))
		case OpInput:
			reg.InstructionPointer = reg.InstructionPointer.Add(one)
			if inputPos >= len(input) {
				return nil, nil, fmt.Errorf("vm: simulate: input exhausted")
			}
			value := field.NewElementFromInt64(int64(input[inputPos]))
			inputPos++
			memory[reg.MemoryPointer.String()] = value
			inputTable.Append([]*core.FieldElement{value})
		default:
			return nil, nil, fmt.Errorf("vm: simulate: unrecognized instruction %q at %d", reg.CurrentInstruction.Big().Int64(), ip)
		}

		reg.Cycle = reg.Cycle.Add(one)

		newIP := int(reg.InstructionPointer.Big().Int64())
		if newIP < len(program) {
			reg.CurrentInstruction = program[newIP]
		} else {
			reg.CurrentInstruction = zero
		}
		if newIP < len(program)-1 {
			reg.NextInstruction = program[newIP+1]
		} else {
			reg.NextInstruction = zero
		}

		reg.MemoryValue = memAt(reg.MemoryPointer)
		if reg.MemoryValue.IsZero() {
			reg.IsZero = one
		} else {
			reg.IsZero = zero
		}

		processor.Append(reg.Row())
		memoryTable.Append([]*core.FieldElement{reg.Cycle, reg.MemoryPointer, reg.MemoryValue})
		instruction.Append([]*core.FieldElement{reg.InstructionPointer, reg.CurrentInstruction, reg.NextInstruction})
	}

	sortRowsByColumn(memoryTable.Rows, 1)
	sortRowsByColumn(instruction.Rows, 0)

	return &Tables{
		Processor:   processor,
		Instruction: instruction,
		Memory:      memoryTable,
		Input:       inputTable,
		Output:      outputTable,
	}, output, nil
}

// sortRowsByColumn stably sorts rows in place by the big-integer value of
// column col, the post-processing step vm.py's simulate applies to the
// memory table (by memory pointer) and the instruction table (by
// instruction pointer).
func sortRowsByColumn(rows [][]*core.FieldElement, col int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][col].Big().Cmp(rows[j][col].Big()) < 0
	})
}
