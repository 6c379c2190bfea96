package pixelcipher

import "fmt"

// wordSource produces uniformly distributed 32-bit words.
type wordSource interface {
	Uint32() uint32
}

// Stream is a deterministic source of masks and permutations.
// Its output depends only on the seed, the format and the order of calls.
// A Stream is not safe for concurrent use; build one per goroutine.
type Stream struct {
	src wordSource
}

// NewStream creates a stream for seed using the given format.
func NewStream(seed Seed, format Format) (*Stream, error) {
	switch format {
	case FormatMT19937:
		return &Stream{src: newMT19937(uint32(seed))}, nil
	case FormatChaCha20:
		src, err := newChaChaSource(seed)
		if err != nil {
			return nil, err
		}

		return &Stream{src: src}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Uint64 combines two words, high word first.
func (s *Stream) Uint64() uint64 {
	hi := uint64(s.src.Uint32())

	return hi<<32 | uint64(s.src.Uint32())
}

// UniformBytes draws height*width bytes uniform on [0, 255], row-major.
func (s *Stream) UniformBytes(height, width int) []uint8 {
	out := make([]uint8, height*width)

	for i := range out {
		// A masked draw over [0, 255] never rejects, so each byte costs one word.
		out[i] = uint8(s.src.Uint32() & 0xff) //nolint:gosec // masked
	}

	return out
}

// Interval draws a value uniform on [0, limit] by masked rejection sampling.
// Interval(0) returns 0 without consuming the stream.
func (s *Stream) Interval(limit uint64) uint64 {
	if limit == 0 {
		return 0
	}

	mask := limit
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	mask |= mask >> 32

	if limit <= 0xffffffff {
		for {
			if value := uint64(s.src.Uint32()) & mask; value <= limit {
				return value
			}
		}
	}

	for {
		if value := s.Uint64() & mask; value <= limit {
			return value
		}
	}
}

// Permutation returns a uniformly shuffled bijection over [0, n).
// The shuffle walks from the last index down, swapping with Interval(i).
func (s *Stream) Permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := n - 1; i > 0; i-- {
		j := int(s.Interval(uint64(i))) //nolint:gosec // j <= i
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}

// Invert returns the inverse of the permutation sigma, so that inv[sigma[i]] == i.
func Invert(sigma []int) []int {
	inv := make([]int, len(sigma))

	for i, target := range sigma {
		inv[target] = i
	}

	return inv
}
