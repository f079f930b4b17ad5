package fri

import (
	"math/big"
	"testing"

	"github.com/vybium/bf-stark/internal/bfstark/core"
	"github.com/vybium/bf-stark/internal/bfstark/transcript"
)

func testFields(t *testing.T) (*core.Field, *core.XField) {
	t.Helper()
	field, err := core.NewField(big.NewInt(3221225473))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return field, core.NewXField(field)
}

// lowDegreeCodeword builds a degree-(degree) extension-field polynomial and
// evaluates it over domain, the kind of codeword FRI is meant to accept.
func lowDegreeCodeword(t *testing.T, domain *core.Domain, field *core.Field, xfield *core.XField, degree int) []*core.XFieldElement {
	t.Helper()
	coeffs := make([]*core.XFieldElement, degree+1)
	for i := range coeffs {
		coeffs[i] = xfield.NewElement(
			field.NewElementFromInt64(int64(i+1)),
			field.NewElementFromInt64(int64(2*i+3)),
			field.NewElementFromInt64(int64(i%5)),
		)
	}
	poly, err := core.NewXPolynomial(coeffs)
	if err != nil {
		t.Fatalf("NewXPolynomial: %v", err)
	}
	values, err := domain.XEvaluate(poly)
	if err != nil {
		t.Fatalf("XEvaluate: %v", err)
	}
	return values
}

func TestFRIProveVerifyRoundTrip(t *testing.T) {
	field, xfield := testFields(t)
	length := 128
	expansionFactor := 4
	numTests := 8

	omega := field.GetPrimitiveRootOfUnity(length)
	if omega == nil {
		t.Fatalf("no root of unity of order %d", length)
	}
	domain, err := core.NewDomain(field.Generator(), omega, length)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	instance, err := New(domain, xfield, expansionFactor, numTests)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	degree := length/expansionFactor - 1
	codeword := lowDegreeCodeword(t, domain, field, xfield, degree)

	proverTranscript := transcript.New()
	proverTranscript.Push([]byte("test-fri"))
	proof, _, err := instance.Prove(codeword, proverTranscript)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifierTranscript := transcript.New()
	verifierTranscript.Push([]byte("test-fri"))
	ok, _, err := instance.Verify(proof, verifierTranscript)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected proof to verify")
	}
}

func TestFRIVerifyRejectsTamperedFinalCodeword(t *testing.T) {
	field, xfield := testFields(t)
	length := 128
	expansionFactor := 4
	numTests := 8

	omega := field.GetPrimitiveRootOfUnity(length)
	domain, err := core.NewDomain(field.Generator(), omega, length)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	instance, err := New(domain, xfield, expansionFactor, numTests)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	degree := length/expansionFactor - 1
	codeword := lowDegreeCodeword(t, domain, field, xfield, degree)

	proverTranscript := transcript.New()
	proverTranscript.Push([]byte("test-fri-tamper"))
	proof, _, err := instance.Prove(codeword, proverTranscript)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	proof.FinalCodeword[0] = proof.FinalCodeword[0].Add(xfield.One())

	verifierTranscript := transcript.New()
	verifierTranscript.Push([]byte("test-fri-tamper"))
	ok, _, err := instance.Verify(proof, verifierTranscript)
	if err == nil && ok {
		t.Fatalf("expected tampered final codeword to fail verification")
	}
}

func TestFRINumRounds(t *testing.T) {
	field, xfield := testFields(t)
	length := 64
	omega := field.GetPrimitiveRootOfUnity(length)
	domain, err := core.NewDomain(field.Generator(), omega, length)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}
	instance, err := New(domain, xfield, 4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if instance.NumRounds() < 1 {
		t.Fatalf("expected at least one round")
	}
}
