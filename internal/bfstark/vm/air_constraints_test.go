package vm

import (
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/air"
	"github.com/vybium/bf-stark/internal/bfstark/core"
)

func liftRow(xfield *core.XField, row []*core.FieldElement) []*core.XFieldElement {
	out := make([]*core.XFieldElement, len(row))
	for i, v := range row {
		out[i] = xfield.Lift(v)
	}
	return out
}

func checkBoundary(t *testing.T, name string, xfield *core.XField, rows [][]*core.FieldElement, constraints []air.Constraint) {
	t.Helper()
	if len(rows) == 0 {
		return
	}
	first := liftRow(xfield, rows[0])
	for i, c := range constraints {
		if !c.Eval(first).IsZero() {
			t.Fatalf("%s: boundary constraint %d nonzero at first row", name, i)
		}
	}
}

func checkTerminal(t *testing.T, name string, xfield *core.XField, rows [][]*core.FieldElement, constraints []air.Constraint) {
	t.Helper()
	if len(rows) == 0 {
		return
	}
	last := liftRow(xfield, rows[len(rows)-1])
	for i, c := range constraints {
		if !c.Eval(last).IsZero() {
			t.Fatalf("%s: terminal constraint %d nonzero at last row", name, i)
		}
	}
}

func checkTransitions(t *testing.T, name string, xfield *core.XField, rows [][]*core.FieldElement, constraints []air.TransitionConstraint) {
	t.Helper()
	for r := 0; r+1 < len(rows); r++ {
		current := liftRow(xfield, rows[r])
		next := liftRow(xfield, rows[r+1])
		for i, c := range constraints {
			if !c.Eval(current, next).IsZero() {
				t.Fatalf("%s: transition constraint %d nonzero between rows %d and %d", name, i, r, r+1)
			}
		}
	}
}

func TestAIRConstraintsVanishOnRealTrace(t *testing.T) {
	field := testField(t)
	xfield := core.NewXField(field)

	programs := []struct {
		name   string
		source string
		input  []byte
	}{
		{"SimpleLoop", "+++++[>+++++<-]>.", nil},
		{"EchoInput", ",.", []byte("x")},
		{"PointerWalk", "+>++>+++<<[-]>[-]>[-]", nil},
	}

	for _, p := range programs {
		t.Run(p.name, func(t *testing.T) {
			program, err := Compile(p.source, field)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			tables, _, err := Simulate(program, p.input)
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}

			challenges := Challenges{
				GammaIn:    xfield.Sample([]byte("test-gamma-in")),
				GammaOut:   xfield.Sample([]byte("test-gamma-out")),
				CompressMP: xfield.Sample([]byte("test-compress-mp")),
				CompressMV: xfield.Sample([]byte("test-compress-mv")),
				Gamma:      xfield.Sample([]byte("test-gamma")),
			}

			procExtra, inputTerminal, outputTerminal, permTerminal := ExtendProcessor(tables.Processor.Rows, xfield, challenges)
			procRows := AppendColumns(tables.Processor.Rows, procExtra)

			memExtra, memPermTerminal := ExtendMemory(tables.Memory.Rows, xfield, challenges)
			memRows := AppendColumns(tables.Memory.Rows, memExtra)
			if !memPermTerminal.Equal(permTerminal) {
				t.Fatalf("memory permutation terminal does not match processor's")
			}

			inExtra, inTerminal := ExtendIO(tables.Input.Rows, xfield, challenges.GammaIn)
			inRows := AppendColumns(tables.Input.Rows, inExtra)
			if !inTerminal.Equal(inputTerminal) {
				t.Fatalf("input evaluation terminal does not match processor's")
			}

			outExtra, outTerminal := ExtendIO(tables.Output.Rows, xfield, challenges.GammaOut)
			outRows := AppendColumns(tables.Output.Rows, outExtra)
			if !outTerminal.Equal(outputTerminal) {
				t.Fatalf("output evaluation terminal does not match processor's")
			}

			terminals := Terminals{InputEval: inputTerminal, OutputEval: outputTerminal, MemPerm: permTerminal}

			processorAIR := NewProcessorAIR(tables.Processor.Height(), field, xfield, challenges, terminals)
			checkBoundary(t, "processor", xfield, procRows, processorAIR.BoundaryConstraints())
			checkTransitions(t, "processor", xfield, procRows, processorAIR.TransitionConstraints())
			checkTerminal(t, "processor", xfield, procRows, processorAIR.TerminalConstraints())

			memoryAIR := NewMemoryAIR(tables.Memory.Height(), field, xfield, challenges, terminals)
			checkBoundary(t, "memory", xfield, memRows, memoryAIR.BoundaryConstraints())
			checkTransitions(t, "memory", xfield, memRows, memoryAIR.TransitionConstraints())
			checkTerminal(t, "memory", xfield, memRows, memoryAIR.TerminalConstraints())

			instructionAIR := NewInstructionAIR(tables.Instruction.Height(), field, xfield)
			checkBoundary(t, "instruction", xfield, tables.Instruction.Rows, instructionAIR.BoundaryConstraints())
			checkTransitions(t, "instruction", xfield, tables.Instruction.Rows, instructionAIR.TransitionConstraints())

			inputAIR := NewIOAIR(tables.Input.Height(), field, xfield, challenges.GammaIn, terminals.InputEval)
			checkBoundary(t, "input", xfield, inRows, inputAIR.BoundaryConstraints())
			checkTransitions(t, "input", xfield, inRows, inputAIR.TransitionConstraints())
			checkTerminal(t, "input", xfield, inRows, inputAIR.TerminalConstraints())

			outputAIR := NewIOAIR(tables.Output.Height(), field, xfield, challenges.GammaOut, terminals.OutputEval)
			checkBoundary(t, "output", xfield, outRows, outputAIR.BoundaryConstraints())
			checkTransitions(t, "output", xfield, outRows, outputAIR.TransitionConstraints())
			checkTerminal(t, "output", xfield, outRows, outputAIR.TerminalConstraints())
		})
	}
}
