package stark

import (
	"math/big"
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/vm"
)

func testParams(t *testing.T) Params {
	t.Helper()
	field, err := core.NewField(big.NewInt(3221225473))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return Params{
		Field:               field,
		XField:              core.NewXField(field),
		ExpansionFactor:     2,
		NumColinearityTests: 2,
	}
}

func TestProveVerifyRoundTrip(t *testing.T) {
	params := testParams(t)
	program, err := vm.Compile("+++++[>+++++<-]>.", params.Field)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	proof, err := Prove(params, program, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof.Output) != 1 || proof.Output[0] != 25 {
		t.Fatalf("unexpected claimed output: %v", proof.Output)
	}

	ok, err := Verify(params, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected proof to verify")
	}
}

func TestVerifyRejectsTamperedOutput(t *testing.T) {
	params := testParams(t)
	program, err := vm.Compile("+++++[>+++++<-]>.", params.Field)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	proof, err := Prove(params, program, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.Output = []byte{proof.Output[0] + 1}

	ok, err := Verify(params, proof)
	if err == nil && ok {
		t.Fatalf("expected tampered output to fail verification")
	}
}

func TestVerifyRejectsTamperedTraceRoot(t *testing.T) {
	params := testParams(t)
	program, err := vm.Compile("+++++[>+++++<-]>.", params.Field)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	proof, err := Prove(params, program, nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	tampered := append([]byte{}, proof.Tables[0].TraceRoot...)
	tampered[0] ^= 0xFF
	proof.Tables[0].TraceRoot = tampered

	ok, err := Verify(params, proof)
	if err == nil && ok {
		t.Fatalf("expected tampered trace root to fail verification")
	}
}
