package core

import "fmt"

// Polynomial is a univariate polynomial over a base Field, stored as a
// coefficient vector with the lowest-degree coefficient first.
type Polynomial struct {
	field        *Field
	coefficients []*FieldElement
}

// NewPolynomial wraps a coefficient vector (lowest degree first). At least
// one coefficient is required so the polynomial's field is known.
func NewPolynomial(coefficients []*FieldElement) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("core: polynomial needs at least one coefficient")
	}
	return &Polynomial{field: coefficients[0].Field(), coefficients: append([]*FieldElement{}, coefficients...)}, nil
}

// Field returns the polynomial's base field.
func (p *Polynomial) Field() *Field { return p.field }

// Coefficients returns the raw coefficient vector (not a copy).
func (p *Polynomial) Coefficients() []*FieldElement { return p.coefficients }

// Degree returns the index of the highest nonzero coefficient, or -1 for
// the zero polynomial.
func (p *Polynomial) Degree() int {
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if !p.coefficients[i].IsZero() {
			return i
		}
	}
	return -1
}

// Eval evaluates the polynomial at point via Horner's method.
func (p *Polynomial) Eval(point *FieldElement) *FieldElement {
	acc := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		acc = acc.Mul(point).Add(p.coefficients[i])
	}
	return acc
}

// Add returns p + other, padding the shorter operand with zeros.
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	out := make([]*FieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Add(other.coeffAt(i))
	}
	poly, _ := NewPolynomial(out)
	return poly
}

// Sub returns p - other.
func (p *Polynomial) Sub(other *Polynomial) *Polynomial {
	n := max(len(p.coefficients), len(other.coefficients))
	out := make([]*FieldElement, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Sub(other.coeffAt(i))
	}
	poly, _ := NewPolynomial(out)
	return poly
}

// Mul returns p * other via schoolbook multiplication.
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	out := make([]*FieldElement, len(p.coefficients)+len(other.coefficients)-1)
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
	poly, _ := NewPolynomial(out)
	return poly
}

// MulScalar returns p scaled by a single field element.
func (p *Polynomial) MulScalar(scalar *FieldElement) *Polynomial {
	out := make([]*FieldElement, len(p.coefficients))
	for i, c := range p.coefficients {
		out[i] = c.Mul(scalar)
	}
	poly, _ := NewPolynomial(out)
	return poly
}

// Scale returns the polynomial q(X) = p(offset * X), i.e. each coefficient
// c_i scaled by offset^i. Used to move a polynomial into a coset before NTT
// evaluation.
func (p *Polynomial) Scale(offset *FieldElement) *Polynomial {
	out := make([]*FieldElement, len(p.coefficients))
	power := p.field.One()
	for i, c := range p.coefficients {
		out[i] = c.Mul(power)
		power = power.Mul(offset)
	}
	poly, _ := NewPolynomial(out)
	return poly
}

// Div performs polynomial long division, returning (quotient, remainder).
func (p *Polynomial) Div(divisor *Polynomial) (*Polynomial, *Polynomial, error) {
	if divisor.Degree() < 0 {
		return nil, nil, fmt.Errorf("core: division by zero polynomial")
	}
	remainder := append([]*FieldElement{}, p.coefficients...)
	divDeg := divisor.Degree()
	lead, err := divisor.coefficients[divDeg].Inv()
	if err != nil {
		return nil, nil, err
	}

	remDeg := degreeOf(remainder)
	if remDeg < divDeg {
		zero, _ := NewPolynomial([]*FieldElement{p.field.Zero()})
		rem, _ := NewPolynomial(remainder)
		return zero, rem, nil
	}

	quotient := make([]*FieldElement, remDeg-divDeg+1)
	for i := range quotient {
		quotient[i] = p.field.Zero()
	}
	for remDeg >= divDeg {
		coeff := remainder[remDeg].Mul(lead)
		shift := remDeg - divDeg
		quotient[shift] = coeff
		for i := 0; i <= divDeg; i++ {
			remainder[shift+i] = remainder[shift+i].Sub(coeff.Mul(divisor.coefficients[i]))
		}
		remDeg = degreeOf(remainder)
		if remDeg < 0 {
			break
		}
	}
	q, err := NewPolynomial(quotient)
	if err != nil {
		return nil, nil, err
	}
	if remDeg < 0 {
		remainder = []*FieldElement{p.field.Zero()}
	}
	r, err := NewPolynomial(remainder)
	if err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

func degreeOf(c []*FieldElement) int {
	for i := len(c) - 1; i >= 0; i-- {
		if !c[i].IsZero() {
			return i
		}
	}
	return -1
}

func (p *Polynomial) coeffAt(i int) *FieldElement {
	if i < len(p.coefficients) {
		return p.coefficients[i]
	}
	return p.field.Zero()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Point is an (x, y) pair used by Lagrange interpolation.
type Point struct {
	X, Y *FieldElement
}

// NewPoint constructs a Point.
func NewPoint(x, y *FieldElement) *Point { return &Point{X: x, Y: y} }

// LagrangeInterpolation interpolates the unique lowest-degree polynomial
// through the given points, by explicit Lagrange basis construction. Used
// only off the NTT fast path (e.g. for non-power-of-two point sets).
func LagrangeInterpolation(points []Point, field *Field) (*Polynomial, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("core: cannot interpolate zero points")
	}
	result, _ := NewPolynomial([]*FieldElement{field.Zero()})
	for i, pi := range points {
		basis, err := NewPolynomial([]*FieldElement{field.One()})
		if err != nil {
			return nil, err
		}
		for j, pj := range points {
			if i == j {
				continue
			}
			denom := pi.X.Sub(pj.X)
			if denom.IsZero() {
				return nil, fmt.Errorf("core: duplicate interpolation points")
			}
			invDenom, err := denom.Inv()
			if err != nil {
				return nil, err
			}
			linear, _ := NewPolynomial([]*FieldElement{pj.X.Neg(), field.One()})
			linear = linear.MulScalar(invDenom)
			basis = basis.Mul(linear)
		}
		term := basis.MulScalar(pi.Y)
		result = result.Add(term)
	}
	return result, nil
}
