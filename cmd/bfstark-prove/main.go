// Command bfstark-prove compiles a brainfuck-like source file, proves its
// execution against optional stdin bytes, and reports whether the
// resulting proof verifies. It exists to exercise the library end to end,
// not as a serialized-proof interchange tool.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/vybium/bf-stark/pkg/bfstark"
)

func main() {
	if len(os.Args) != 2 {
		fatal("usage: bfstark-prove <source-file>")
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fatal(fmt.Sprintf("failed to read source: %v", err))
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal(fmt.Sprintf("failed to read stdin: %v", err))
	}

	prover, err := bfstark.NewProver(bfstark.DefaultConfig())
	if err != nil {
		fatal(fmt.Sprintf("failed to create prover: %v", err))
	}

	program, err := prover.Compile(string(source))
	if err != nil {
		fatal(fmt.Sprintf("failed to compile program: %v", err))
	}

	logStderr("proving execution...")
	proof, err := prover.Prove(program, input)
	if err != nil {
		fatal(fmt.Sprintf("proof generation failed: %v", err))
	}
	logStderr(fmt.Sprintf("proved %d cycles, output %d bytes", proof.Tables[0].Height-1, len(proof.Output)))

	verifier, err := bfstark.NewVerifier(bfstark.DefaultConfig())
	if err != nil {
		fatal(fmt.Sprintf("failed to create verifier: %v", err))
	}
	ok, err := verifier.Verify(proof)
	if err != nil {
		fatal(fmt.Sprintf("verification failed: %v", err))
	}
	if !ok {
		fatal("proof did not verify")
	}

	logStderr("proof verified")
	os.Stdout.Write(proof.Output)
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "bfstark-prove:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
