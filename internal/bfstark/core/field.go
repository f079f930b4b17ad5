// Package core provides the prime field, extension field, polynomial,
// domain and salted-Merkle substrate that the FRI engine and AIR layer are
// built on.
package core

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Field is a prime field F_p used for the VM trace and the first layer of
// Fiat-Shamir challenges.
type Field struct {
	modulus   *big.Int
	generator *big.Int
}

// FieldElement is an element of a Field, always kept reduced mod p.
type FieldElement struct {
	field *Field
	value *big.Int
}

// DefaultModulus is the 31-bit prime 2^30*3 + 1 used throughout the original
// stark-brainfuck reference implementation and its test vectors.
var DefaultModulus = big.NewInt(3221225473)

// NewField constructs a prime field with the given modulus. A multiplicative
// generator of the full group is located by trial (the moduli used in this
// package all have a small generator).
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("core: modulus must be greater than 2")
	}
	f := &Field{modulus: new(big.Int).Set(modulus)}
	g, err := f.findGenerator()
	if err != nil {
		return nil, err
	}
	f.generator = g
	return f, nil
}

// NewFieldFromUint64 constructs a prime field from a uint64 modulus.
func NewFieldFromUint64(modulus uint64) (*Field, error) {
	return NewField(new(big.Int).SetUint64(modulus))
}

// Modulus returns a copy of the field's modulus.
func (f *Field) Modulus() *big.Int { return new(big.Int).Set(f.modulus) }

// Generator returns a generator of the field's multiplicative group.
func (f *Field) Generator() *FieldElement { return f.NewElement(f.generator) }

// Equals reports whether two fields share the same modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// NewElement reduces value mod p and wraps it as a FieldElement.
func (f *Field) NewElement(value *big.Int) *FieldElement {
	v := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{field: f, value: v}
}

// NewElementFromInt64 wraps an int64 as a FieldElement.
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 wraps a uint64 as a FieldElement.
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// Zero returns the additive identity.
func (f *Field) Zero() *FieldElement { return f.NewElementFromInt64(0) }

// One returns the multiplicative identity.
func (f *Field) One() *FieldElement { return f.NewElementFromInt64(1) }

// RandomElement draws a cryptographically random field element.
func (f *Field) RandomElement() (*FieldElement, error) {
	v, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("core: random element: %w", err)
	}
	return f.NewElement(v), nil
}

// Sample hashes an arbitrary-length seed into a uniformly distributed field
// element, per spec.md's "uniform sampling from a seed". The seed is hashed
// with SHA3-512 and the digest is reduced mod p; collisions in the top bits
// are negligible for the moduli used here.
func (f *Field) Sample(seed []byte) *FieldElement {
	digest := sha3.Sum512(seed)
	v := new(big.Int).SetBytes(digest[:])
	return f.NewElement(v)
}

// GetPrimitiveRootOfUnity returns a primitive n-th root of unity, or nil if
// n does not divide p-1.
func (f *Field) GetPrimitiveRootOfUnity(n int) *FieldElement {
	pMinus1 := new(big.Int).Sub(f.modulus, big.NewInt(1))
	nBig := big.NewInt(int64(n))
	if new(big.Int).Mod(pMinus1, nBig).Sign() != 0 {
		return nil
	}
	exponent := new(big.Int).Div(pMinus1, nBig)
	return f.NewElement(f.generator).Exp(exponent)
}

// findGenerator locates a generator of F*_p by trial exponentiation against
// the prime factors of p-1 discovered via trial division. This is only run
// once per Field and the moduli used here are small enough for it to be fast.
func (f *Field) findGenerator() (*big.Int, error) {
	pMinus1 := new(big.Int).Sub(f.modulus, big.NewInt(1))
	factors := primeFactors(pMinus1)

	for candidate := int64(2); candidate < 1000; candidate++ {
		g := big.NewInt(candidate)
		if g.Cmp(f.modulus) >= 0 {
			break
		}
		isGenerator := true
		for _, p := range factors {
			exp := new(big.Int).Div(pMinus1, p)
			if new(big.Int).Exp(g, exp, f.modulus).Cmp(big.NewInt(1)) == 0 {
				isGenerator = false
				break
			}
		}
		if isGenerator {
			return g, nil
		}
	}
	return nil, fmt.Errorf("core: no generator found below 1000 for modulus %s", f.modulus)
}

// primeFactors returns the distinct prime factors of n via trial division.
func primeFactors(n *big.Int) []*big.Int {
	n = new(big.Int).Set(n)
	var factors []*big.Int
	two := big.NewInt(2)
	for new(big.Int).Mod(n, two).Sign() == 0 {
		factors = append(factors, big.NewInt(2))
		n.Div(n, two)
		for new(big.Int).Mod(n, two).Sign() == 0 {
			n.Div(n, two)
		}
		break
	}
	d := big.NewInt(3)
	for new(big.Int).Mul(d, d).Cmp(n) <= 0 {
		if new(big.Int).Mod(n, d).Sign() == 0 {
			factors = append(factors, new(big.Int).Set(d))
			for new(big.Int).Mod(n, d).Sign() == 0 {
				n.Div(n, d)
			}
		}
		d.Add(d, big.NewInt(2))
	}
	if n.Cmp(big.NewInt(1)) > 0 {
		factors = append(factors, n)
	}
	return factors
}

// Big returns a copy of the underlying integer value.
func (fe *FieldElement) Big() *big.Int { return new(big.Int).Set(fe.value) }

// Field returns the field this element belongs to.
func (fe *FieldElement) Field() *Field { return fe.field }

// Add returns fe + other.
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	return fe.field.NewElement(new(big.Int).Add(fe.value, other.value))
}

// Sub returns fe - other.
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	return fe.field.NewElement(new(big.Int).Sub(fe.value, other.value))
}

// Neg returns -fe.
func (fe *FieldElement) Neg() *FieldElement {
	return fe.field.NewElement(new(big.Int).Neg(fe.value))
}

// Mul returns fe * other.
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	return fe.field.NewElement(new(big.Int).Mul(fe.value, other.value))
}

// Square returns fe * fe.
func (fe *FieldElement) Square() *FieldElement { return fe.Mul(fe) }

// Inv returns the multiplicative inverse of fe.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.IsZero() {
		return nil, fmt.Errorf("core: cannot invert zero")
	}
	inv := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if inv == nil {
		return nil, fmt.Errorf("core: inverse does not exist")
	}
	return fe.field.NewElement(inv), nil
}

// Div returns fe / other.
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("core: division: %w", err)
	}
	return fe.Mul(inv), nil
}

// Exp returns fe^exponent.
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	if exponent.Sign() < 0 {
		inv, err := fe.Inv()
		if err != nil {
			return fe.field.Zero()
		}
		return inv.Exp(new(big.Int).Neg(exponent))
	}
	return fe.field.NewElement(new(big.Int).Exp(fe.value, exponent, fe.field.modulus))
}

// ExpInt is a convenience wrapper around Exp for int exponents.
func (fe *FieldElement) ExpInt(exponent int) *FieldElement {
	return fe.Exp(big.NewInt(int64(exponent)))
}

// Equal reports value equality within the same field.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	return fe.field.Equals(other.field) && fe.value.Cmp(other.value) == 0
}

// IsZero reports whether fe is the additive identity.
func (fe *FieldElement) IsZero() bool { return fe.value.Sign() == 0 }

// IsOne reports whether fe is the multiplicative identity.
func (fe *FieldElement) IsOne() bool { return fe.value.Cmp(big.NewInt(1)) == 0 }

// String renders the element's integer value.
func (fe *FieldElement) String() string { return fe.value.String() }

// Bytes returns the big-endian byte encoding of the element's value.
func (fe *FieldElement) Bytes() []byte { return fe.value.Bytes() }
