package pixelcipher

import "crypto/sha256"

// SeedModulus is the Mersenne prime 2^31 - 1. Seeds are in [0, SeedModulus).
const SeedModulus = 1<<31 - 1

// Seed initializes a Stream.
type Seed uint32

// DeriveSeed hashes key with SHA-256, reads the digest as a big-endian integer
// and reduces it modulo SeedModulus. The empty key is hashed like any other.
func DeriveSeed(key string) Seed {
	digest := sha256.Sum256([]byte(key))

	// Horner reduction over the digest bytes; the accumulator stays below 2^39.
	var acc uint64

	for _, b := range digest {
		acc = (acc<<8 | uint64(b)) % SeedModulus
	}

	return Seed(acc)
}
