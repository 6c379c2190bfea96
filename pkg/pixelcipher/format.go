package pixelcipher

import (
	"fmt"
	"strings"
)

// Format selects the word generator behind a Stream. It is part of the ciphertext
// format: an image encrypted under one Format only decrypts under the same Format.
type Format byte

const (
	// FormatMT19937 draws words from MT19937 seeded with init_genrand.
	// Output matches NumPy's legacy RandomState for the same seed.
	FormatMT19937 Format = iota
	// FormatChaCha20 draws little-endian words from a ChaCha20 keystream whose key is
	// HKDF-SHA256 over the big-endian seed.
	FormatChaCha20
)

// DefaultFormat is the format used by the package-level Encrypt and Decrypt.
const DefaultFormat = FormatMT19937

// Formats lists the names accepted by ParseFormat.
func Formats() []string {
	return []string{FormatMT19937.String(), FormatChaCha20.String()}
}

func (f Format) String() string {
	switch f {
	case FormatMT19937:
		return "mt19937"
	case FormatChaCha20:
		return "chacha20"
	default:
		return fmt.Sprintf("Format(%d)", byte(f))
	}
}

// ParseFormat maps a format name (case-insensitive) to its Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mt19937", "legacy", "":
		return FormatMT19937, nil
	case "chacha20", "chacha":
		return FormatChaCha20, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
}

func (f Format) valid() bool {
	return f == FormatMT19937 || f == FormatChaCha20
}
