package core

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// HashBytes hashes an arbitrary byte string with SHA-3/Keccak, the one byte
// oracle this package depends on (the teacher's own field-friendly Poseidon
// hash in core/hash.go is explicitly marked "BASIC implementation for
// testing purposes" and is not reused for anything security-bearing here;
// SHA-3 is the teacher's real, already-wired dependency and does every job
// this package needs a byte oracle for: Merkle node hashing, Fiat-Shamir
// absorption, and index rejection-sampling).
func HashBytes(data []byte) []byte {
	digest := sha3.Sum256(data)
	return digest[:]
}

// HashBytesToLength hashes data and returns the first n bytes of the
// digest, expanding via repeated counter-suffixed hashing if n exceeds the
// native digest size.
func HashBytesToLength(data []byte, n int) []byte {
	out := make([]byte, 0, n)
	var counter uint32
	for len(out) < n {
		var suffix [4]byte
		binary.BigEndian.PutUint32(suffix[:], counter)
		digest := sha3.Sum256(append(append([]byte{}, data...), suffix[:]...))
		out = append(out, digest[:]...)
		counter++
	}
	return out[:n]
}

// HashPair combines two node hashes into their parent, used by
// SaltedMerkleTree.
func HashPair(left, right []byte) []byte {
	combined := make([]byte, 0, len(left)+len(right))
	combined = append(combined, left...)
	combined = append(combined, right...)
	return HashBytes(combined)
}

// FieldElementsToBytes encodes a slice of FieldElements as a single byte
// string (length-prefixed big-endian values) suitable for hashing.
func FieldElementsToBytes(elements []*FieldElement) []byte {
	var out []byte
	for _, e := range elements {
		b := e.Bytes()
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(b)))
		out = append(out, length[:]...)
		out = append(out, b...)
	}
	return out
}

// XFieldElementsToBytes encodes a slice of XFieldElements as a single byte
// string by concatenating each element's three coordinate encodings.
func XFieldElementsToBytes(elements []*XFieldElement) []byte {
	var out []byte
	for _, e := range elements {
		c := e.Coefficients()
		out = append(out, FieldElementsToBytes([]*FieldElement{c[0], c[1], c[2]})...)
	}
	return out
}
