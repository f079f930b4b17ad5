package vm

import (
	"fmt"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// The eight recognized instruction characters. '[' and ']' each occupy two
// program cells (opcode plus a jump-target operand); every other
// instruction occupies one cell.
const (
	OpIncrementPointer = '>'
	OpDecrementPointer = '<'
	OpIncrementValue   = '+'
	OpDecrementValue   = '-'
	OpOutput           = '.'
	OpInput            = ','
	OpLoopOpen         = '['
	OpLoopClose        = ']'
)

// Compile assembles brainfuck source into a program: a flat slice of field
// elements where each instruction byte is followed, for '[' and ']' only,
// by its matching jump target. Bracket matching is resolved by a single
// backpatching pass over an index stack, exactly as
// original_source/code/vm.py's VirtualMachine.compile does it.
func Compile(source string, field *core.Field) ([]*core.FieldElement, error) {
	var program []*core.FieldElement
	var stack []int

	for _, symbol := range source {
		if !isRecognized(byte(symbol)) {
			continue
		}
		program = append(program, field.NewElementFromInt64(int64(symbol)))
		switch byte(symbol) {
		case OpLoopOpen:
			program = append(program, field.Zero())
			stack = append(stack, len(program)-1)
		case OpLoopClose:
			if len(stack) == 0 {
				return nil, fmt.Errorf("vm: compile: unmatched ']'")
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			program = append(program, field.NewElementFromInt64(int64(open+1)))
			program[open] = field.NewElementFromInt64(int64(len(program)))
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("vm: compile: unmatched '['")
	}
	if len(program) == 0 {
		return nil, fmt.Errorf("vm: compile: empty program")
	}
	return program, nil
}

func isRecognized(b byte) bool {
	switch b {
	case OpIncrementPointer, OpDecrementPointer, OpIncrementValue, OpDecrementValue, OpOutput, OpInput, OpLoopOpen, OpLoopClose:
		return true
	default:
		return false
	}
}
