package vm

import (
	"math/big"
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/core"
)

func testField(t *testing.T) *core.Field {
	t.Helper()
	field, err := core.NewField(big.NewInt(3221225473))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return field
}

func TestCompileUnmatchedBrackets(t *testing.T) {
	field := testField(t)
	t.Run("UnmatchedOpen", func(t *testing.T) {
		if _, err := Compile("[+", field); err == nil {
			t.Fatalf("expected error for unmatched '['")
		}
	})
	t.Run("UnmatchedClose", func(t *testing.T) {
		if _, err := Compile("+]", field); err == nil {
			t.Fatalf("expected error for unmatched ']'")
		}
	})
	t.Run("EmptyProgram", func(t *testing.T) {
		if _, err := Compile("", field); err == nil {
			t.Fatalf("expected error for empty program")
		}
	})
	t.Run("IgnoresUnrecognizedBytes", func(t *testing.T) {
		program, err := Compile("+ hello world +", field)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if len(program) != 2 {
			t.Fatalf("expected 2 cells, got %d", len(program))
		}
	})
}

func TestPerformAndSimulateAgree(t *testing.T) {
	field := testField(t)

	cases := []struct {
		name    string
		source  string
		input   []byte
		wantOut []byte
	}{
		{"IncrementOutput", "+++.", nil, []byte{3}},
		{"EchoInput", ",.", []byte("Z"), []byte("Z")},
		{"LoopZerosCell", "+++[-]+.", nil, []byte{1}},
		{"MovePointer", "+>++.<.", nil, []byte{2, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			program, err := Compile(tc.source, field)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			gotPerform, err := Perform(program, tc.input)
			if err != nil {
				t.Fatalf("Perform: %v", err)
			}
			if string(gotPerform) != string(tc.wantOut) {
				t.Fatalf("Perform: got %v, want %v", gotPerform, tc.wantOut)
			}

			tables, gotSimulate, err := Simulate(program, tc.input)
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}
			if string(gotSimulate) != string(tc.wantOut) {
				t.Fatalf("Simulate: got %v, want %v", gotSimulate, tc.wantOut)
			}
			if tables.Processor.Height() == 0 {
				t.Fatalf("expected a non-empty processor table")
			}
		})
	}
}

func TestSimulateTableShapesAndSorting(t *testing.T) {
	field := testField(t)
	program, err := Compile("+>+>+<<[-]>[-]>[-]", field)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	tables, _, err := Simulate(program, nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if tables.Processor.Width() != 7 {
		t.Fatalf("processor table width = %d, want 7", tables.Processor.Width())
	}
	if tables.Memory.Width() != 3 {
		t.Fatalf("memory table width = %d, want 3", tables.Memory.Width())
	}
	if tables.Instruction.Width() != 3 {
		t.Fatalf("instruction table width = %d, want 3", tables.Instruction.Width())
	}

	// memory table sorted by memory pointer (column 1)
	for i := 1; i < len(tables.Memory.Rows); i++ {
		prev := tables.Memory.Rows[i-1][1].Big()
		cur := tables.Memory.Rows[i][1].Big()
		if prev.Cmp(cur) > 0 {
			t.Fatalf("memory table not sorted by memory pointer at row %d", i)
		}
	}

	// instruction table sorted by instruction pointer (column 0)
	for i := 1; i < len(tables.Instruction.Rows); i++ {
		prev := tables.Instruction.Rows[i-1][0].Big()
		cur := tables.Instruction.Rows[i][0].Big()
		if prev.Cmp(cur) > 0 {
			t.Fatalf("instruction table not sorted by instruction pointer at row %d", i)
		}
	}
}

func TestSimulateInputExhausted(t *testing.T) {
	field := testField(t)
	program, err := Compile(",,.", field)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, _, err := Simulate(program, []byte("A")); err == nil {
		t.Fatalf("expected error when input is exhausted")
	}
}
