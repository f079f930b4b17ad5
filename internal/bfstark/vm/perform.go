package vm

import (
	"fmt"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

// Perform runs a compiled program with a thin, non-tracing interpreter:
// integer instruction pointer, a sparse map for the tape, and no bookkeeping
// for any of the five trace tables. It exists only so tests can cross-check
// Simulate's output bytes independent of trace construction, mirroring
// original_source/code/vm.py's VirtualMachine.perform (kept by the open
// question recorded in SPEC_FULL.md: Simulate is authoritative, Perform is
// reference/test-only).
func Perform(program []*core.FieldElement, input []byte) ([]byte, error) {
	if len(program) == 0 {
		return nil, fmt.Errorf("vm: perform: empty program")
	}
	field := program[0].Field()
	zero := field.Zero()
	one := field.One()

	ip := 0
	mp := field.Zero()
	memory := make(map[string]*core.FieldElement)
	var output []byte
	inputPos := 0

	memAt := func(p *core.FieldElement) *core.FieldElement {
		if v, ok := memory[p.String()]; ok {
			return v
		}
		return zero
	}

	for ip < len(program) {
		switch byte(program[ip].Big().Int64()) {
		case OpLoopOpen:
			if memAt(mp).IsZero() {
				ip = int(program[ip+1].Big().Int64())
			} else {
				ip += 2
			}
		case OpLoopClose:
			if !memAt(mp).IsZero() {
				ip = int(program[ip+1].Big().Int64())
			} else {
				ip += 2
			}
		case OpDecrementPointer:
			ip++
			mp = mp.Sub(one)
		case OpIncrementPointer:
			ip++
			mp = mp.Add(one)
		case OpIncrementValue:
			ip++
			memory[mp.String()] = memAt(mp).Add(one)
		case OpDecrementValue:
			ip++
			memory[mp.String()] = memAt(mp).Sub(one)
		case OpOutput:
			ip++
			output = append(output, byte(memAt(mp).Big().Int64()%256))
		case OpInput:
			ip++
			if inputPos >= len(input) {
				return nil, fmt.Errorf("vm: perform: input exhausted")
			}
			memory[mp.String()] = field.NewElementFromInt64(int64(input[inputPos]))
			inputPos++
		default:
			return nil, fmt.Errorf("vm: perform: unrecognized instruction %q at %d", program[ip].Big().Int64(), ip)
		}
	}
	return output, nil
}
