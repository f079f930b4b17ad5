package core

import "fmt"

// Domain is an arithmetic domain offset*<omega> = {offset, offset*omega,
// offset*omega^2, ...}: a coset of the subgroup generated by omega, a
// primitive length-th root of unity. Every evaluation domain used by the
// FRI engine and the AIR quotient machinery (the trace domain, the extended
// "FRI domain" used for low-degree testing) is one of these triples,
// mirroring the `Domain` inner class of the Python `Fri` implementation
// this package's FRI engine is grounded on.
type Domain struct {
	offset *FieldElement
	omega  *FieldElement
	length int
}

// NewDomain constructs a coset domain. length must be a power of two and
// omega must be a primitive length-th root of unity.
func NewDomain(offset, omega *FieldElement, length int) (*Domain, error) {
	if !isPowerOfTwo(length) {
		return nil, fmt.Errorf("core: domain length %d is not a power of two", length)
	}
	return &Domain{offset: offset, omega: omega, length: length}, nil
}

// Offset returns the domain's coset offset.
func (d *Domain) Offset() *FieldElement { return d.offset }

// Omega returns the domain's generator (a primitive length-th root of unity).
func (d *Domain) Omega() *FieldElement { return d.omega }

// Length returns the number of points in the domain.
func (d *Domain) Length() int { return d.length }

// Point returns the i-th point of the domain: offset * omega^i.
func (d *Domain) Point(i int) *FieldElement {
	return d.offset.Mul(d.omega.ExpInt(i))
}

// Points returns every point of the domain, in order.
func (d *Domain) Points() []*FieldElement {
	out := make([]*FieldElement, d.length)
	acc := d.offset
	for i := 0; i < d.length; i++ {
		out[i] = acc
		acc = acc.Mul(d.omega)
	}
	return out
}

// Evaluate evaluates poly at every point of the domain via a coset NTT:
// scale the coefficients into the coset, zero-pad to the domain length,
// then run the forward NTT. poly's degree must be less than d.length.
func (d *Domain) Evaluate(poly *Polynomial) ([]*FieldElement, error) {
	if poly.Degree() >= d.length {
		return nil, fmt.Errorf("core: domain evaluate: polynomial degree %d exceeds domain length %d", poly.Degree(), d.length)
	}
	scaled := poly.Scale(d.offset)
	padded := padFieldElements(scaled.Coefficients(), d.length, d.offset.Field())
	return ntt(d.omega, padded)
}

// Interpolate recovers the unique polynomial of degree < d.length whose
// evaluation over the domain equals values, via inverse NTT followed by
// un-scaling out of the coset.
func (d *Domain) Interpolate(values []*FieldElement) (*Polynomial, error) {
	if len(values) != d.length {
		return nil, fmt.Errorf("core: domain interpolate: expected %d values, got %d", d.length, len(values))
	}
	coeffs, err := intt(d.omega, values)
	if err != nil {
		return nil, fmt.Errorf("core: domain interpolate: %w", err)
	}
	offsetInv, err := d.offset.Inv()
	if err != nil {
		return nil, fmt.Errorf("core: domain interpolate: %w", err)
	}
	poly, err := NewPolynomial(coeffs)
	if err != nil {
		return nil, err
	}
	return poly.Scale(offsetInv), nil
}

// XEvaluate evaluates an extension-field polynomial over the domain by
// running three coordinate-wise base-field NTTs (one per X^0, X^1, X^2
// coefficient) and re-assembling the results into extension-field values.
func (d *Domain) XEvaluate(poly *XPolynomial) ([]*XFieldElement, error) {
	if poly.Degree() >= d.length {
		return nil, fmt.Errorf("core: domain xevaluate: polynomial degree %d exceeds domain length %d", poly.Degree(), d.length)
	}
	xfield := poly.Field()
	base := d.offset.Field()
	lanes := splitCoordinates(poly.Coefficients(), base)

	results := make([][]*FieldElement, 3)
	for lane := 0; lane < 3; lane++ {
		laneCoeffs, err := NewPolynomial(lanes[lane])
		if err != nil {
			return nil, err
		}
		values, err := d.Evaluate(laneCoeffs)
		if err != nil {
			return nil, fmt.Errorf("core: domain xevaluate: lane %d: %w", lane, err)
		}
		results[lane] = values
	}

	out := make([]*XFieldElement, d.length)
	for i := 0; i < d.length; i++ {
		out[i] = xfield.NewElement(results[0][i], results[1][i], results[2][i])
	}
	return out, nil
}

// XInterpolate recovers the unique extension-field polynomial of degree <
// d.length whose evaluation over the domain equals values, by running three
// coordinate-wise inverse NTTs.
func (d *Domain) XInterpolate(values []*XFieldElement) (*XPolynomial, error) {
	if len(values) != d.length {
		return nil, fmt.Errorf("core: domain xinterpolate: expected %d values, got %d", d.length, len(values))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("core: domain xinterpolate: empty value set")
	}
	xfield := values[0].Field()

	lanes := make([][]*FieldElement, 3)
	for lane := 0; lane < 3; lane++ {
		lanes[lane] = make([]*FieldElement, d.length)
	}
	for i, v := range values {
		c := v.Coefficients()
		lanes[0][i], lanes[1][i], lanes[2][i] = c[0], c[1], c[2]
	}

	coeffs := make([][]*FieldElement, 3)
	for lane := 0; lane < 3; lane++ {
		poly, err := d.Interpolate(lanes[lane])
		if err != nil {
			return nil, fmt.Errorf("core: domain xinterpolate: lane %d: %w", lane, err)
		}
		coeffs[lane] = padFieldElements(poly.Coefficients(), d.length, d.offset.Field())
	}

	out := make([]*XFieldElement, d.length)
	for i := 0; i < d.length; i++ {
		out[i] = xfield.NewElement(coeffs[0][i], coeffs[1][i], coeffs[2][i])
	}
	return NewXPolynomial(out)
}

func padFieldElements(in []*FieldElement, length int, field *Field) []*FieldElement {
	out := make([]*FieldElement, length)
	for i := 0; i < length; i++ {
		if i < len(in) {
			out[i] = in[i]
		} else {
			out[i] = field.Zero()
		}
	}
	return out
}

// splitCoordinates splits an extension-field coefficient vector into its
// three base-field lanes (c0, c1, c2), each padded to the same length.
func splitCoordinates(coeffs []*XFieldElement, base *Field) [3][]*FieldElement {
	var lanes [3][]*FieldElement
	for lane := 0; lane < 3; lane++ {
		lanes[lane] = make([]*FieldElement, len(coeffs))
	}
	for i, c := range coeffs {
		coord := c.Coefficients()
		lanes[0][i], lanes[1][i], lanes[2][i] = coord[0], coord[1], coord[2]
	}
	_ = base
	return lanes
}
