// Package bfstark provides a zero-knowledge proof system for execution of
// a minimal brainfuck-like language (`+ - < > [ ] . ,`): compile a program,
// run it to get a claimed output, and produce a STARK proof that the
// output really was produced by running that program.
//
// # Quick Start
//
//	prover, err := bfstark.NewProver(bfstark.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	program, err := prover.Compile("++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := prover.Prove(program, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	verifier, err := bfstark.NewVerifier(bfstark.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	ok, err := verifier.Verify(proof)
//
// # Architecture
//
// bf-stark uses the same public/private split as the codebase it grew
// from:
//
//   - pkg/bfstark/: public API (this package)
//   - internal/bfstark/core: prime and cubic-extension field arithmetic,
//     polynomials, NTT-based domains, salted Merkle trees
//   - internal/bfstark/transcript: the Fiat-Shamir transcript shared by
//     prover and verifier
//   - internal/bfstark/fri: the FRI low-degree test
//   - internal/bfstark/air: boundary/transition/terminal constraint
//     quotients over a committed trace codeword
//   - internal/bfstark/vm: compiling and simulating brainfuck programs
//     into their trace tables
//   - internal/bfstark/stark: wiring all of the above into one prover and
//     verifier
package bfstark
