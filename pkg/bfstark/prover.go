package bfstark

import (
	"math/big"

	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/stark"
	"github.com/vybium/bf-stark/internal/bfstark/vm"
)

// Prover compiles and proves brainfuck-like program executions.
type Prover struct {
	field  *core.Field
	xfield *core.XField
	params stark.Params
}

// NewProver builds a Prover from config, resolving its field modulus and
// FRI parameters once so repeated calls to Prove don't pay setup cost
// again.
func NewProver(config *Config) (*Prover, error) {
	field, err := resolveField(config)
	if err != nil {
		return nil, err
	}
	xfield := core.NewXField(field)
	return &Prover{
		field:  field,
		xfield: xfield,
		params: stark.Params{
			Field:               field,
			XField:              xfield,
			ExpansionFactor:     config.ExpansionFactor,
			NumColinearityTests: config.NumColinearityTests,
		},
	}, nil
}

func resolveField(config *Config) (*core.Field, error) {
	modulus := core.DefaultModulus
	if config != nil && config.FieldModulus != "" {
		parsed, ok := new(big.Int).SetString(config.FieldModulus, 10)
		if !ok {
			return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid field modulus"}
		}
		modulus = parsed
	}
	field, err := core.NewField(modulus)
	if err != nil {
		return nil, &VMError{Code: ErrFieldCreation, Message: "failed to create field", Cause: err}
	}
	return field, nil
}

// Compile assembles brainfuck source into a program over this prover's
// field.
func (p *Prover) Compile(source string) ([]*FieldElement, error) {
	program, err := vm.Compile(source, p.field)
	if err != nil {
		return nil, &VMError{Code: ErrCompilation, Message: "failed to compile program", Cause: err}
	}
	return program, nil
}

// Run executes program against input with the non-tracing reference
// interpreter, for callers that just want the output without a proof.
func (p *Prover) Run(program []*FieldElement, input []byte) ([]byte, error) {
	output, err := vm.Perform(program, input)
	if err != nil {
		return nil, &VMError{Code: ErrVMExecution, Message: "program execution failed", Cause: err}
	}
	return output, nil
}

// Prove simulates program against input and produces a Proof that the
// resulting execution trace satisfies every table's constraints.
func (p *Prover) Prove(program []*FieldElement, input []byte) (*Proof, error) {
	proof, err := stark.Prove(p.params, program, input)
	if err != nil {
		return nil, &VMError{Code: ErrProofGeneration, Message: "proof generation failed", Cause: err}
	}
	return proof, nil
}

// Verifier checks STARK proofs produced by a Prover built from the same
// Config.
type Verifier struct {
	params stark.Params
}

// NewVerifier builds a Verifier from config.
func NewVerifier(config *Config) (*Verifier, error) {
	field, err := resolveField(config)
	if err != nil {
		return nil, err
	}
	xfield := core.NewXField(field)
	return &Verifier{
		params: stark.Params{
			Field:               field,
			XField:              xfield,
			ExpansionFactor:     config.ExpansionFactor,
			NumColinearityTests: config.NumColinearityTests,
		},
	}, nil
}

// Verify checks proof, returning whether it is valid.
func (v *Verifier) Verify(proof *Proof) (bool, error) {
	ok, err := stark.Verify(v.params, proof)
	if err != nil {
		return false, &VMError{Code: ErrProofVerification, Message: "proof verification failed", Cause: err}
	}
	return ok, nil
}
