package bfstark

import "testing"

func testConfig() *Config {
	return &Config{
		ExpansionFactor:     2,
		NumColinearityTests: 2,
	}
}

func TestProverRunMatchesCompiledProgram(t *testing.T) {
	prover, err := NewProver(testConfig())
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	program, err := prover.Compile("++++.")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	output, err := prover.Run(program, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(output) != 1 || output[0] != 4 {
		t.Fatalf("unexpected output: %v", output)
	}
}

func TestProverProveVerifyEndToEnd(t *testing.T) {
	prover, err := NewProver(testConfig())
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	program, err := prover.Compile(",.")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	proof, err := prover.Prove(program, []byte("Q"))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if string(proof.Output) != "Q" {
		t.Fatalf("unexpected claimed output: %q", proof.Output)
	}

	verifier, err := NewVerifier(testConfig())
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	ok, err := verifier.Verify(proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected proof to verify")
	}
}

func TestNewProverRejectsInvalidModulus(t *testing.T) {
	_, err := NewProver(&Config{FieldModulus: "not-a-number"})
	if err == nil {
		t.Fatalf("expected error for invalid field modulus")
	}
	vmErr, ok := err.(*VMError)
	if !ok {
		t.Fatalf("expected *VMError, got %T", err)
	}
	if vmErr.Code != ErrInvalidConfig {
		t.Fatalf("expected ErrInvalidConfig, got %v", vmErr.Code)
	}
}

func TestCompileRejectsUnmatchedBrackets(t *testing.T) {
	prover, err := NewProver(testConfig())
	if err != nil {
		t.Fatalf("NewProver: %v", err)
	}
	_, err = prover.Compile("[+")
	if err == nil {
		t.Fatalf("expected compilation error")
	}
	vmErr, ok := err.(*VMError)
	if !ok {
		t.Fatalf("expected *VMError, got %T", err)
	}
	if vmErr.Code != ErrCompilation {
		t.Fatalf("expected ErrCompilation, got %v", vmErr.Code)
	}
}
