package pixelcipher_test

import (
	"os"
	"slices"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// Vectors is the layout of testdata/mt19937.yml.
type Vectors struct {
	Seeds []struct {
		Key  string `yaml:"key"`
		Seed uint32 `yaml:"seed"`
	} `yaml:"seeds"`
	Streams []struct {
		Description string `yaml:"description"`
		Seed        uint32 `yaml:"seed"`
		Bytes       []int  `yaml:"bytes"`
		Permutation []int  `yaml:"permutation"`
	} `yaml:"streams"`
	Images []struct {
		Description string `yaml:"description"`
		Height      int    `yaml:"height"`
		Width       int    `yaml:"width"`
		Key         string `yaml:"key"`
		Plain       []int  `yaml:"plain"`
		Cipher      []int  `yaml:"cipher"`
	} `yaml:"images"`
}

func loadVectors(t *testing.T) Vectors {
	t.Helper()

	data, err := os.ReadFile("testdata/mt19937.yml")
	if err != nil {
		t.Fatalf("reading vectors: %v", err)
	}

	var vectors Vectors
	if err := yaml.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("parsing vectors: %v", err)
	}

	if len(vectors.Seeds) == 0 || len(vectors.Streams) == 0 || len(vectors.Images) == 0 {
		t.Fatal("vectors file is missing a section")
	}

	return vectors
}

func toBytes(values []int) []uint8 {
	out := make([]uint8, len(values))
	for i, v := range values {
		out[i] = uint8(v) //nolint:gosec // test data is in range
	}

	return out
}

func TestDeriveSeedVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range loadVectors(t).Seeds {
		t.Run(tc.Key, func(t *testing.T) {
			t.Parallel()

			if got := pixelcipher.DeriveSeed(tc.Key); uint32(got) != tc.Seed {
				t.Errorf("DeriveSeed(%q) = %d, want %d", tc.Key, got, tc.Seed)
			}
		})
	}
}

func TestStreamVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range loadVectors(t).Streams {
		t.Run(tc.Description, func(t *testing.T) {
			t.Parallel()

			stream, err := pixelcipher.NewStream(pixelcipher.Seed(tc.Seed), pixelcipher.FormatMT19937)
			if err != nil {
				t.Fatalf("NewStream: %v", err)
			}

			if got := stream.UniformBytes(1, len(tc.Bytes)); !slices.Equal(got, toBytes(tc.Bytes)) {
				t.Errorf("UniformBytes = %v, want %v", got, tc.Bytes)
			}

			stream, err = pixelcipher.NewStream(pixelcipher.Seed(tc.Seed), pixelcipher.FormatMT19937)
			if err != nil {
				t.Fatalf("NewStream: %v", err)
			}

			if got := stream.Permutation(len(tc.Permutation)); !slices.Equal(got, tc.Permutation) {
				t.Errorf("Permutation = %v, want %v", got, tc.Permutation)
			}
		})
	}
}

func TestImageVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range loadVectors(t).Images {
		t.Run(tc.Description, func(t *testing.T) {
			t.Parallel()

			plain := pixelcipher.Grid{
				Height:   tc.Height,
				Width:    tc.Width,
				Channels: pixelcipher.Channels,
				Pix:      toBytes(tc.Plain),
			}

			encrypted, err := pixelcipher.Encrypt(plain, tc.Key)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}

			if want := toBytes(tc.Cipher); !slices.Equal(encrypted.Pix, want) {
				t.Errorf("Encrypt = %v, want %v", encrypted.Pix, want)
			}

			decrypted, err := pixelcipher.Decrypt(encrypted, tc.Key)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}

			if !decrypted.Equal(plain) {
				t.Errorf("Decrypt = %v, want %v", decrypted.Pix, plain.Pix)
			}
		})
	}
}
