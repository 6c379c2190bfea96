package pixelcipher

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

const chachaInfo = "pixelc/chacha20"

// chachaSource reads 32-bit words from a ChaCha20 keystream.
type chachaSource struct {
	cipher *chacha20.Cipher
	block  [64]byte
	pos    int
}

func newChaChaSource(seed Seed) (*chachaSource, error) {
	var ikm [4]byte

	binary.BigEndian.PutUint32(ikm[:], uint32(seed))

	key := make([]byte, chacha20.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm[:], nil, []byte(chachaInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving chacha20 key: %w", err)
	}

	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("creating chacha20 cipher: %w", err)
	}

	src := &chachaSource{cipher: c}
	src.pos = len(src.block)

	return src, nil
}

// Uint32 returns the next little-endian keystream word.
func (s *chachaSource) Uint32() uint32 {
	if s.pos == len(s.block) {
		clear(s.block[:])
		s.cipher.XORKeyStream(s.block[:], s.block[:])
		s.pos = 0
	}

	word := binary.LittleEndian.Uint32(s.block[s.pos:])
	s.pos += 4

	return word
}
