package core

import "fmt"

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// log2 returns floor(log2(n)) for a positive power-of-two n.
func log2(n int) int {
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}

func reverseBits(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

// ntt evaluates the coefficient vector coeffs (lowest degree first, length a
// power of two) at every power of omega, where omega is a primitive
// len(coeffs)-th root of unity. This is the iterative Cooley-Tukey
// radix-2 decimation-in-time transform.
func ntt(omega *FieldElement, coeffs []*FieldElement) ([]*FieldElement, error) {
	n := len(coeffs)
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("core: ntt: length %d is not a power of two", n)
	}
	field := omega.Field()
	bits := log2(n)

	values := make([]*FieldElement, n)
	for i, c := range coeffs {
		values[reverseBits(i, bits)] = c
	}

	for size := 2; size <= n; size *= 2 {
		halfSize := size / 2
		stepExp := n / size
		stepRoot := omega.ExpInt(stepExp)
		for start := 0; start < n; start += size {
			w := field.One()
			for i := 0; i < halfSize; i++ {
				even := values[start+i]
				odd := values[start+i+halfSize].Mul(w)
				values[start+i] = even.Add(odd)
				values[start+i+halfSize] = even.Sub(odd)
				w = w.Mul(stepRoot)
			}
		}
	}
	return values, nil
}

// intt is the inverse of ntt: given evaluations at powers of omega, recover
// the coefficient vector.
func intt(omega *FieldElement, values []*FieldElement) ([]*FieldElement, error) {
	n := len(values)
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("core: intt: length %d is not a power of two", n)
	}
	omegaInv, err := omega.Inv()
	if err != nil {
		return nil, fmt.Errorf("core: intt: %w", err)
	}
	coeffs, err := ntt(omegaInv, values)
	if err != nil {
		return nil, err
	}
	field := omega.Field()
	nInv, err := field.NewElementFromUint64(uint64(n)).Inv()
	if err != nil {
		return nil, fmt.Errorf("core: intt: %w", err)
	}
	out := make([]*FieldElement, n)
	for i, c := range coeffs {
		out[i] = c.Mul(nInv)
	}
	return out, nil
}
