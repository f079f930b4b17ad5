package core

import "testing"

func TestDomainEvaluateInterpolateRoundTrip(t *testing.T) {
	field := testField(t)
	length := 16
	omega := field.GetPrimitiveRootOfUnity(length)
	if omega == nil {
		t.Fatalf("no root of unity of order %d", length)
	}
	domain, err := NewDomain(field.One(), omega, length)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	coeffs := make([]*FieldElement, length)
	for i := range coeffs {
		coeffs[i] = field.NewElementFromInt64(int64(i*i + 1))
	}
	poly, err := NewPolynomial(coeffs)
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}

	values, err := domain.Evaluate(poly)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	recovered, err := domain.Interpolate(values)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	for i := 0; i < length; i++ {
		if !recovered.Coefficients()[i].Equal(coeffs[i]) {
			t.Fatalf("coefficient %d: got %s, want %s", i, recovered.Coefficients()[i], coeffs[i])
		}
	}
}

func TestDomainCosetEvaluate(t *testing.T) {
	field := testField(t)
	length := 8
	omega := field.GetPrimitiveRootOfUnity(length)
	domain, err := NewDomain(field.Generator(), omega, length)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	coeffs := []*FieldElement{field.NewElementFromInt64(1), field.NewElementFromInt64(2)}
	poly, err := NewPolynomial(coeffs)
	if err != nil {
		t.Fatalf("NewPolynomial: %v", err)
	}

	values, err := domain.Evaluate(poly)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for i, point := range domain.Points() {
		if !values[i].Equal(poly.Eval(point)) {
			t.Fatalf("point %d: domain evaluation disagrees with direct Eval", i)
		}
	}
}

func TestDomainXEvaluateXInterpolateRoundTrip(t *testing.T) {
	field := testField(t)
	xfield := NewXField(field)
	length := 16
	omega := field.GetPrimitiveRootOfUnity(length)
	domain, err := NewDomain(field.One(), omega, length)
	if err != nil {
		t.Fatalf("NewDomain: %v", err)
	}

	coeffs := make([]*XFieldElement, length)
	for i := range coeffs {
		coeffs[i] = xfield.NewElement(
			field.NewElementFromInt64(int64(i)),
			field.NewElementFromInt64(int64(2*i+1)),
			field.NewElementFromInt64(int64(i%3)),
		)
	}
	poly, err := NewXPolynomial(coeffs)
	if err != nil {
		t.Fatalf("NewXPolynomial: %v", err)
	}

	values, err := domain.XEvaluate(poly)
	if err != nil {
		t.Fatalf("XEvaluate: %v", err)
	}
	recovered, err := domain.XInterpolate(values)
	if err != nil {
		t.Fatalf("XInterpolate: %v", err)
	}
	for i := 0; i < length; i++ {
		if !recovered.Coefficients()[i].Equal(coeffs[i]) {
			t.Fatalf("coefficient %d: round trip mismatch", i)
		}
	}
}
