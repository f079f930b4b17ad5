package bfstark

import (
	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/stark"
)

// FieldElement is the public type for base-field elements.
type FieldElement = core.FieldElement

// Proof is the public type for a complete STARK proof.
type Proof = stark.Proof

// Config fixes the field modulus and FRI security parameters a Prover or
// Verifier is built against.
type Config struct {
	// FieldModulus is the decimal string of the base prime field's
	// modulus. Leave empty to use core.DefaultModulus.
	FieldModulus string

	// ExpansionFactor is the FRI codeword's blowup factor relative to the
	// trace domain.
	ExpansionFactor int

	// NumColinearityTests is how many FRI colinearity checks the query
	// phase runs per round.
	NumColinearityTests int
}

// DefaultConfig returns the configuration the bfstark-prove command uses:
// the default 31-bit modulus, a 4x blowup, and 2 colinearity tests per
// round. These are demonstration parameters, chosen small enough that
// even a handful of VM cycles still clears FRI's minimum-round
// requirement -- raise ExpansionFactor and NumColinearityTests for a
// deployment that needs a real soundness margin.
func DefaultConfig() *Config {
	return &Config{
		FieldModulus:        core.DefaultModulus.String(),
		ExpansionFactor:     4,
		NumColinearityTests: 2,
	}
}
