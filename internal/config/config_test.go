package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

func valid() config.Config {
	return config.Config{
		Key:      config.Key{String: "secret"},
		Stream:   config.Stream{Format: "mt19937"},
		Suffixes: config.Suffixes{Encrypt: ".enc", Decrypt: ".dec"},
		Output:   "png",
		Parallel: 2,
		Files:    []string{"."},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "no key", mutate: func(c *config.Config) { c.Key.String = "" }, wantErr: "--key is a required field"},
		{
			name:    "both keys",
			mutate:  func(c *config.Config) { c.Key.File = "key.txt" },
			wantErr: "--key is mutually exclusive",
		},
		{name: "legacy alias", mutate: func(c *config.Config) { c.Stream.Format = "legacy" }},
		{name: "chacha alias", mutate: func(c *config.Config) { c.Stream.Format = "ChaCha" }},
		{name: "bad format", mutate: func(c *config.Config) { c.Stream.Format = "rc4" }, wantErr: "--format must be one of [mt19937 chacha20]"},
		{name: "upper case output", mutate: func(c *config.Config) { c.Output = "TIFF" }},
		{name: "lossy output", mutate: func(c *config.Config) { c.Output = "jpeg" }, wantErr: "--output-format must be one of [png bmp tiff]"},
		{name: "no workers", mutate: func(c *config.Config) { c.Parallel = 0 }, wantErr: "--parallel must be 1 or greater"},
		{name: "no paths", mutate: func(c *config.Config) { c.Files = nil }, wantErr: "paths must contain at least 1 item"},
		{name: "missing suffix", mutate: func(c *config.Config) { c.Suffixes.Decrypt = "" }, wantErr: "--decrypt-ext is a required field"},
		{
			name:    "missing include file",
			mutate:  func(c *config.Config) { c.Patterns.IncludeFrom = "does-not-exist.jsonc" },
			wantErr: "'--include-from' failed on the 'file' tag",
		},
		{name: "server is not checked", mutate: func(c *config.Config) { c.Server.MaxUpload = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.Validate(&cfg)

			switch {
			case tc.wantErr == "" && err != nil:
				t.Fatalf("Validate() = %v, want nil", err)
			case tc.wantErr != "" && err == nil:
				t.Fatalf("Validate() = nil, want error containing %q", tc.wantErr)
			case tc.wantErr != "" && !strings.Contains(err.Error(), tc.wantErr):
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.wantErr)
			case tc.wantErr != "" && !errors.Is(err, config.ErrUsage):
				t.Fatalf("Validate() = %v, want ErrUsage", err)
			}
		})
	}
}

func TestValidateParts(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Key:    config.Key{String: "k"},
		Stream: config.Stream{Format: "chacha20"},
		Server: config.Server{Addr: "127.0.0.1:5000", MaxUpload: 1 << 20, MaxPixels: 1 << 20},
	}

	// Parts validate on their own, without paths or suffixes.
	for _, part := range []any{&cfg.Key, &cfg.Stream, &cfg.Server, &cfg.Patterns} {
		if err := cfg.Validate(part); err != nil {
			t.Errorf("Validate(%T) = %v", part, err)
		}
	}

	cfg.Server.MaxUpload = 0
	if err := cfg.Validate(&cfg.Server); err == nil || !strings.Contains(err.Error(), "--max-upload must be greater than 0") {
		t.Errorf("Validate(Server) = %v, want a --max-upload error", err)
	}

	cfg.Server.Addr = "nowhere"
	if err := cfg.Validate(&cfg.Server); err == nil || !strings.Contains(err.Error(), "--addr") {
		t.Errorf("Validate(Server) = %v, want an --addr error", err)
	}

	cfg.Stream.Format = "nope"
	if err := cfg.Validate(&cfg.Stream); err == nil || !strings.Contains(err.Error(), "--format") {
		t.Errorf("Validate(Stream) = %v, want a --format error", err)
	}

	cfg.Patterns.ExcludeFrom = filepath.Join(t.TempDir(), "missing.json")
	if err := cfg.Validate(&cfg.Patterns); err == nil || !strings.Contains(err.Error(), "--exclude-from") {
		t.Errorf("Validate(Patterns) = %v, want an --exclude-from error", err)
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	if (&config.Config{}).Display() {
		t.Error("Display() = true without Show")
	}

	if !(&config.Config{Show: true}).Display() {
		t.Error("Display() = false with Show")
	}
}

func TestPassphrase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key.txt")

	if err := os.WriteFile(keyFile, []byte("from file\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	emptyFile := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	inline := config.Config{Key: config.Key{String: "inline"}}
	if got, err := inline.Passphrase(); err != nil || got != "inline" {
		t.Errorf("Passphrase() = %q, %v; want inline", got, err)
	}

	file := config.Config{Key: config.Key{File: keyFile}}
	if got, err := file.Passphrase(); err != nil || got != "from file" {
		t.Errorf("Passphrase() = %q, %v; want %q", got, err, "from file")
	}

	empty := config.Config{Key: config.Key{File: emptyFile}}
	if _, err := empty.Passphrase(); !errors.Is(err, config.ErrEmptyKey) {
		t.Errorf("Passphrase() error = %v, want ErrEmptyKey", err)
	}

	missing := config.Config{Key: config.Key{File: filepath.Join(dir, "nope")}}
	if _, err := missing.Passphrase(); err == nil {
		t.Error("Passphrase() accepted a missing key file")
	}
}

func TestCipherFormat(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Stream: config.Stream{Format: "chacha"}}

	got, err := cfg.CipherFormat()
	if err != nil || got != pixelcipher.FormatChaCha20 {
		t.Errorf("CipherFormat() = %v, %v; want chacha20", got, err)
	}

	if ext := (&config.Config{Output: "TIFF"}).OutputExt(); ext != ".tiff" {
		t.Errorf("OutputExt() = %q, want .tiff", ext)
	}
}
