package logic

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// fingerprintSize is the number of stream bytes shown by RunSeed.
const fingerprintSize = 16

// RunSeed prints the seed derived from the key and the first stream bytes for the
// configured format. Two keys with equal output produce identical ciphertexts.
func RunSeed(cfg *config.Config) error {
	return runSeed(cfg, os.Stdout)
}

func runSeed(cfg *config.Config, w io.Writer) error {
	key, err := cfg.Passphrase()
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}

	format, err := cfg.CipherFormat()
	if err != nil {
		return err
	}

	seed := pixelcipher.DeriveSeed(key)

	stream, err := pixelcipher.NewStream(seed, format)
	if err != nil {
		return fmt.Errorf("creating stream: %w", err)
	}

	fmt.Fprintf(w, "format:      %s\n", format)
	fmt.Fprintf(w, "seed:        %d\n", seed)
	fmt.Fprintf(w, "fingerprint: %s\n", hex.EncodeToString(stream.UniformBytes(1, fingerprintSize)))

	return nil
}
