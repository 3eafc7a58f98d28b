// Package sid computes 32-bit string-identifier hashes. The same
// function backs both the offline preprocessor (which bakes hashes
// into source files) and run-time lookups for strings not known until
// execution, so a constant emitted at build time always matches the
// hash computed on the spot for the same bytes.
//
// The algorithm is djb2: accumulator seeded to 5381, then
// acc = acc*33 + c for each byte, wrapping on 32-bit overflow.
// Wraparound is part of the defined semantics, not an error.
package sid

// Seed is the initial accumulator value of the djb2 hash. Hashing an
// empty byte range yields exactly this value.
const Seed uint32 = 5381

// Func is a hash strategy over a byte range. The preprocessor accepts
// a Func so alternate algorithms can be tested without touching the
// scanner; any substitute must be applied to both the offline and the
// run-time path or precomputed constants stop matching.
type Func func([]byte) uint32

// Hash returns the 32-bit djb2 hash of b.
func Hash(b []byte) uint32 {
	h := Seed
	for _, c := range b {
		h = (h << 5) + h + uint32(c)
	}
	return h
}

// HashString returns the 32-bit djb2 hash of the bytes of s. This is
// the run-time callable path: hash identifiers on the spot, then at
// some point preprocess your sources to turn them into hard-coded
// constants with the same values.
func HashString(s string) uint32 {
	h := Seed
	for i := 0; i < len(s); i++ {
		h = (h << 5) + h + uint32(s[i])
	}
	return h
}
