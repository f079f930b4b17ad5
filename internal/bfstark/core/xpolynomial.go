package core

import "fmt"

// XPolynomial is a univariate polynomial over an XField, stored as a
// coefficient vector with the lowest-degree coefficient first. It plays the
// same role as Polynomial but for extension-field quantities: trace
// extension columns, quotient codewords and FRI folding all operate on
// XPolynomial once challenges have pulled values out of the base field.
type XPolynomial struct {
	field        *XField
	coefficients []*XFieldElement
}

// NewXPolynomial wraps a coefficient vector (lowest degree first).
func NewXPolynomial(coefficients []*XFieldElement) (*XPolynomial, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("core: extension polynomial needs at least one coefficient")
	}
	return &XPolynomial{field: coefficients[0].Field(), coefficients: append([]*XFieldElement{}, coefficients...)}, nil
}

// Field returns the polynomial's extension field.
func (p *XPolynomial) Field() *XField { return p.field }

// Coefficients returns the raw coefficient vector (not a copy).
func (p *XPolynomial) Coefficients() []*XFieldElement { return p.coefficients }

// Degree returns the index of the highest nonzero coefficient, or -1 for
// the zero polynomial.
func (p *XPolynomial) Degree() int {
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if !p.coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// Eval evaluates the polynomial at a base-field point via Horner's method.
func (p *XPolynomial) Eval(point *FieldElement) *XFieldElement {
	lifted := p.field.Lift(point)
	acc := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		acc = acc.Mul(lifted).Add(p.coefficients[i])
	}
	return acc
}

// XEval evaluates the polynomial at an extension-field point.
func (p *XPolynomial) XEval(point *XFieldElement) *XFieldElement {
	acc := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		acc = acc.Mul(point).Add(p.coefficients[i])
	}
	return acc
}

// Add returns p + other, padding the shorter operand with zeros.
func (p *XPolynomial) Add(other *XPolynomial) *XPolynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	out := make([]*XFieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Add(other.coeffAt(i))
	}
	poly, _ := NewXPolynomial(out)
	return poly
}

// Sub returns p - other.
func (p *XPolynomial) Sub(other *XPolynomial) *XPolynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	out := make([]*XFieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Sub(other.coeffAt(i))
	}
	poly, _ := NewXPolynomial(out)
	return poly
}

// Mul returns p * other via schoolbook multiplication.
func (p *XPolynomial) Mul(other *XPolynomial) *XPolynomial {
	out := make([]*XFieldElement, len(p.coefficients)+len(other.coefficients)-1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i, a := range p.coefficients {
		if a.IsZero() {
			continue
		}
		for j, b := range other.coefficients {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	poly, _ := NewXPolynomial(out)
	return poly
}

// MulBasePoly returns p * q where q is a base-field polynomial, used when
// multiplying a quotient numerator by a base-field zerofier.
func (p *XPolynomial) MulBasePoly(q *Polynomial) *XPolynomial {
	qCoeffs := q.Coefficients()
	out := make([]*XFieldElement, len(p.coefficients)+len(qCoeffs)-1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i, a := range p.coefficients {
		if a.IsZero() {
			continue
		}
		for j, b := range qCoeffs {
			out[i+j] = out[i+j].Add(a.MulBase(b))
		}
	}
	poly, _ := NewXPolynomial(out)
	return poly
}

// ScaleBase returns q(X) = p(offset * X) for a base-field offset, i.e. each
// coefficient c_i scaled by offset^i.
func (p *XPolynomial) ScaleBase(offset *FieldElement) *XPolynomial {
	out := make([]*XFieldElement, len(p.coefficients))
	power := offset.Field().One()
	for i, c := range p.coefficients {
		out[i] = c.MulBase(power)
		power = power.Mul(offset)
	}
	poly, _ := NewXPolynomial(out)
	return poly
}

// DivBasePoly divides p by a base-field polynomial exactly, returning
// (quotient, remainder). Used to divide a numerator codeword by a zerofier
// whose roots are known to vanish the numerator (boundary/transition/
// terminal quotients never have a true remainder in a correct trace).
func (p *XPolynomial) DivBasePoly(divisor *Polynomial) (*XPolynomial, *XPolynomial, error) {
	if divisor.Degree() < 0 {
		return nil, nil, fmt.Errorf("core: extension division by zero polynomial")
	}
	base := divisor.Field()
	divDeg := divisor.Degree()
	lead, err := divisor.Coefficients()[divDeg].Inv()
	if err != nil {
		return nil, nil, err
	}

	remainder := append([]*XFieldElement{}, p.coefficients...)
	remDeg := xDegreeOf(remainder)
	if remDeg < divDeg {
		zero, _ := NewXPolynomial([]*XFieldElement{p.field.Zero()})
		rem, _ := NewXPolynomial(remainder)
		return zero, rem, nil
	}

	quotient := make([]*XFieldElement, remDeg-divDeg+1)
	for i := range quotient {
		quotient[i] = p.field.Zero()
	}
	for remDeg >= divDeg {
		coeff := remainder[remDeg].MulBase(lead)
		shift := remDeg - divDeg
		quotient[shift] = coeff
		for i := 0; i <= divDeg; i++ {
			remainder[shift+i] = remainder[shift+i].Sub(coeff.MulBase(divisor.Coefficients()[i]))
		}
		remDeg = xDegreeOf(remainder)
		if remDeg < 0 {
			break
		}
	}
	q, err := NewXPolynomial(quotient)
	if err != nil {
		return nil, nil, err
	}
	if remDeg < 0 {
		remainder = []*XFieldElement{p.field.Zero()}
	}
	r, err := NewXPolynomial(remainder)
	if err != nil {
		return nil, nil, err
	}
	_ = base
	return q, r, nil
}

func xDegreeOf(c []*XFieldElement) int {
	for i := len(c) - 1; i >= 0; i-- {
		if !c[i].IsZero() {
			return i
		}
	}
	return -1
}

func (p *XPolynomial) coeffAt(i int) *XFieldElement {
	if i < len(p.coefficients) {
		return p.coefficients[i]
	}
	return p.field.Zero()
}
