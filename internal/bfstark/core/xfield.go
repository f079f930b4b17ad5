package core

import (
	"fmt"
)

// XField is the cubic extension of a base Field by the irreducible
// polynomial X^3 - X + 1, i.e. F[X]/(X^3 - X + 1). Every STARK challenge,
// extension-column value and FRI round-challenge in this package lives in
// an XField so that the soundness of the protocol does not collapse to the
// (much smaller) base field.
type XField struct {
	base *Field
}

// XFieldElement is an element of an XField, represented as its coefficient
// vector [c0, c1, c2] for c0 + c1*X + c2*X^2, reduced modulo X^3 - X + 1.
type XFieldElement struct {
	field *XField
	coeff [3]*FieldElement
}

// NewXField builds the cubic extension of base.
func NewXField(base *Field) *XField {
	return &XField{base: base}
}

// Base returns the underlying base field.
func (x *XField) Base() *Field { return x.base }

// NewElement builds an XFieldElement from explicit coefficients, padding
// with zero if fewer than three are given.
func (x *XField) NewElement(coeffs ...*FieldElement) *XFieldElement {
	var c [3]*FieldElement
	for i := range c {
		if i < len(coeffs) && coeffs[i] != nil {
			c[i] = coeffs[i]
		} else {
			c[i] = x.base.Zero()
		}
	}
	return &XFieldElement{field: x, coeff: c}
}

// Zero returns the additive identity.
func (x *XField) Zero() *XFieldElement { return x.NewElement(x.base.Zero(), x.base.Zero(), x.base.Zero()) }

// One returns the multiplicative identity.
func (x *XField) One() *XFieldElement { return x.NewElement(x.base.One(), x.base.Zero(), x.base.Zero()) }

// Lift is the canonical embedding of a base-field element into the
// extension field: lift(a) = a + 0*X + 0*X^2.
func (x *XField) Lift(base *FieldElement) *XFieldElement {
	return x.NewElement(base, x.base.Zero(), x.base.Zero())
}

// Sample hashes a seed into a uniformly distributed extension-field
// element by sampling each coordinate from a domain-separated sub-seed.
func (x *XField) Sample(seed []byte) *XFieldElement {
	c0 := x.base.Sample(append(append([]byte{}, seed...), 0))
	c1 := x.base.Sample(append(append([]byte{}, seed...), 1))
	c2 := x.base.Sample(append(append([]byte{}, seed...), 2))
	return x.NewElement(c0, c1, c2)
}

// Field returns the field this element belongs to.
func (fe *XFieldElement) Field() *XField { return fe.field }

// Coefficients returns the length-3 coefficient vector [c0, c1, c2].
func (fe *XFieldElement) Coefficients() [3]*FieldElement { return fe.coeff }

// IsLifted reports whether fe is the lift of a base-field element, i.e. its
// X and X^2 coefficients vanish.
func (fe *XFieldElement) IsLifted() bool {
	return fe.coeff[1].IsZero() && fe.coeff[2].IsZero()
}

// Unlift returns the base-field coefficient of a lifted element. Callers
// must check IsLifted first.
func (fe *XFieldElement) Unlift() *FieldElement { return fe.coeff[0] }

// Add returns fe + other.
func (fe *XFieldElement) Add(other *XFieldElement) *XFieldElement {
	return fe.field.NewElement(
		fe.coeff[0].Add(other.coeff[0]),
		fe.coeff[1].Add(other.coeff[1]),
		fe.coeff[2].Add(other.coeff[2]),
	)
}

// Sub returns fe - other.
func (fe *XFieldElement) Sub(other *XFieldElement) *XFieldElement {
	return fe.field.NewElement(
		fe.coeff[0].Sub(other.coeff[0]),
		fe.coeff[1].Sub(other.coeff[1]),
		fe.coeff[2].Sub(other.coeff[2]),
	)
}

// Neg returns -fe.
func (fe *XFieldElement) Neg() *XFieldElement {
	return fe.field.NewElement(fe.coeff[0].Neg(), fe.coeff[1].Neg(), fe.coeff[2].Neg())
}

// Mul returns fe * other, reduced modulo X^3 - X + 1.
//
// The full product of two degree-<=2 polynomials has degree <= 4:
//
//	p = c0 + c1 X + c2 X^2,  q = d0 + d1 X + d2 X^2
//
// Reduction uses X^3 = X - 1 and X^4 = X^2 - X.
func (fe *XFieldElement) Mul(other *XFieldElement) *XFieldElement {
	a, b := fe.coeff, other.coeff
	zero := fe.field.base.Zero()

	p := [5]*FieldElement{zero, zero, zero, zero, zero}
	for i := 0; i < 3; i++ {
		if a[i].IsZero() {
			continue
		}
		for j := 0; j < 3; j++ {
			p[i+j] = p[i+j].Add(a[i].Mul(b[j]))
		}
	}

	c0 := p[0].Sub(p[3])
	c1 := p[1].Add(p[3]).Sub(p[4])
	c2 := p[2].Add(p[4])
	return fe.field.NewElement(c0, c1, c2)
}

// MulBase returns fe scaled by a base-field element.
func (fe *XFieldElement) MulBase(scalar *FieldElement) *XFieldElement {
	return fe.field.NewElement(fe.coeff[0].Mul(scalar), fe.coeff[1].Mul(scalar), fe.coeff[2].Mul(scalar))
}

// Square returns fe * fe.
func (fe *XFieldElement) Square() *XFieldElement { return fe.Mul(fe) }

// IsZero reports whether every coefficient vanishes.
func (fe *XFieldElement) IsZero() bool {
	return fe.coeff[0].IsZero() && fe.coeff[1].IsZero() && fe.coeff[2].IsZero()
}

// IsOne reports whether fe is the multiplicative identity.
func (fe *XFieldElement) IsOne() bool {
	return fe.coeff[0].IsOne() && fe.coeff[1].IsZero() && fe.coeff[2].IsZero()
}

// Equal reports coefficient-wise equality.
func (fe *XFieldElement) Equal(other *XFieldElement) bool {
	return fe.coeff[0].Equal(other.coeff[0]) && fe.coeff[1].Equal(other.coeff[1]) && fe.coeff[2].Equal(other.coeff[2])
}

// modulusCoeffs returns the coefficients (low-to-high) of the reduction
// polynomial X^3 - X + 1: 1 - X + 0*X^2 + X^3.
func (x *XField) modulusCoeffs() []*FieldElement {
	one := x.base.One()
	return []*FieldElement{one, one.Neg(), x.base.Zero(), one}
}

// Inv computes the multiplicative inverse via the extended Euclidean
// algorithm over F[X], run against the fixed modulus polynomial. This
// mirrors the extended-Euclidean inversion spec.md §3 calls for.
func (fe *XFieldElement) Inv() (*XFieldElement, error) {
	if fe.IsZero() {
		return nil, fmt.Errorf("core: cannot invert zero extension element")
	}
	base := fe.field.base
	a := []*FieldElement{fe.coeff[0], fe.coeff[1], fe.coeff[2]}
	m := fe.field.modulusCoeffs()

	g, _, t, err := polyExtendedGCD(base, m, a)
	if err != nil {
		return nil, fmt.Errorf("core: extension field inversion: %w", err)
	}
	// t * a ≡ g (mod m) with g a nonzero constant; scaling t by 1/g gives
	// t * a ≡ 1 (mod m). t has degree < 3 since m has degree 3.
	gInv, err := polyTrim(g)[0].Inv()
	if err != nil {
		return nil, fmt.Errorf("core: extension field inversion: %w", err)
	}
	for i := range t {
		t[i] = t[i].Mul(gInv)
	}
	for len(t) < 3 {
		t = append(t, base.Zero())
	}
	return fe.field.NewElement(t[0], t[1], t[2]), nil
}

// Div returns fe / other.
func (fe *XFieldElement) Div(other *XFieldElement) (*XFieldElement, error) {
	inv, err := other.Inv()
	if err != nil {
		return nil, err
	}
	return fe.Mul(inv), nil
}

// Exp raises fe to a non-negative integer power by repeated squaring.
func (fe *XFieldElement) Exp(exponent int) *XFieldElement {
	if exponent < 0 {
		inv, err := fe.Inv()
		if err != nil {
			return fe.field.Zero()
		}
		return inv.Exp(-exponent)
	}
	result := fe.field.One()
	base := fe
	for exponent > 0 {
		if exponent&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exponent >>= 1
	}
	return result
}

// String renders the element as "c0 + c1*X + c2*X^2".
func (fe *XFieldElement) String() string {
	return fmt.Sprintf("%s + %s*X + %s*X^2", fe.coeff[0], fe.coeff[1], fe.coeff[2])
}

// --- plain polynomial extended Euclidean algorithm over a base Field,
// coefficients stored low-degree-first, used only to invert XFieldElements.

func polyTrim(p []*FieldElement) []*FieldElement {
	n := len(p)
	for n > 0 && p[n-1].IsZero() {
		n--
	}
	return p[:n]
}

func polyDegree(p []*FieldElement) int { return len(polyTrim(p)) - 1 }

func polyDivMod(field *Field, a, b []*FieldElement) (q, r []*FieldElement, err error) {
	a = append([]*FieldElement{}, a...)
	bDeg := polyDegree(b)
	if bDeg < 0 {
		return nil, nil, fmt.Errorf("division by zero polynomial")
	}
	lead, err := b[bDeg].Inv()
	if err != nil {
		return nil, nil, err
	}
	aDeg := polyDegree(a)
	if aDeg < bDeg {
		return []*FieldElement{field.Zero()}, a, nil
	}
	q = make([]*FieldElement, aDeg-bDeg+1)
	for i := range q {
		q[i] = field.Zero()
	}
	for aDeg >= bDeg {
		coeff := a[aDeg].Mul(lead)
		shift := aDeg - bDeg
		q[shift] = coeff
		for i := 0; i <= bDeg; i++ {
			a[shift+i] = a[shift+i].Sub(coeff.Mul(b[i]))
		}
		a = polyTrim(a)
		aDeg = polyDegree(a)
		if len(a) == 0 {
			break
		}
	}
	if len(a) == 0 {
		a = []*FieldElement{field.Zero()}
	}
	return q, a, nil
}

// polyExtendedGCD returns (g, s, t) such that s*a + t*b = g = gcd(a, b).
func polyExtendedGCD(field *Field, a, b []*FieldElement) (g, s, t []*FieldElement, err error) {
	r0, r1 := append([]*FieldElement{}, a...), append([]*FieldElement{}, b...)
	s0, s1 := []*FieldElement{field.One()}, []*FieldElement{field.Zero()}
	t0, t1 := []*FieldElement{field.Zero()}, []*FieldElement{field.One()}

	for polyDegree(r1) >= 0 {
		q, r, derr := polyDivMod(field, r0, r1)
		if derr != nil {
			return nil, nil, nil, derr
		}
		r0, r1 = r1, r
		s0, s1 = s1, polySub(field, s0, polyMul(field, q, s1))
		t0, t1 = t1, polySub(field, t0, polyMul(field, q, t1))
	}
	return r0, s0, t0, nil
}

func polyMul(field *Field, a, b []*FieldElement) []*FieldElement {
	if polyDegree(a) < 0 || polyDegree(b) < 0 {
		return []*FieldElement{field.Zero()}
	}
	out := make([]*FieldElement, len(a)+len(b)-1)
	for i := range out {
		out[i] = field.Zero()
	}
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			out[i+j] = out[i+j].Add(ai.Mul(bj))
		}
	}
	return out
}

func polySub(field *Field, a, b []*FieldElement) []*FieldElement {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*FieldElement, n)
	for i := 0; i < n; i++ {
		var av, bv *FieldElement
		if i < len(a) {
			av = a[i]
		} else {
			av = field.Zero()
		}
		if i < len(b) {
			bv = b[i]
		} else {
			bv = field.Zero()
		}
		out[i] = av.Sub(bv)
	}
	return out
}

// XBatchInversion inverts a batch of extension elements with a single
// inversion via Montgomery's trick, generalizing core.BatchInversion to X.
func XBatchInversion(elements []*XFieldElement) ([]*XFieldElement, error) {
	n := len(elements)
	if n == 0 {
		return []*XFieldElement{}, nil
	}
	for i, e := range elements {
		if e.IsZero() {
			return nil, fmt.Errorf("core: batch inversion: zero extension element at index %d", i)
		}
	}
	acc := make([]*XFieldElement, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}
	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, err
	}
	results := make([]*XFieldElement, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv
	return results, nil
}
