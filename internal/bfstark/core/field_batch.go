package core

import "fmt"

// BatchInversion inverts every element of elements with a single field
// inversion, using Montgomery's trick: accumulate running products, invert
// the final accumulator, then back-substitute. Used throughout the AIR
// quotient machinery (§4.4) where each table needs one inverse per domain
// point.
func BatchInversion(elements []*FieldElement) ([]*FieldElement, error) {
	n := len(elements)
	if n == 0 {
		return []*FieldElement{}, nil
	}
	for i, e := range elements {
		if e.IsZero() {
			return nil, fmt.Errorf("core: batch inversion: zero element at index %d", i)
		}
	}

	acc := make([]*FieldElement, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}

	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, fmt.Errorf("core: batch inversion: %w", err)
	}

	results := make([]*FieldElement, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}
