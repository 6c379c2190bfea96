// Package config holds the runtime configuration shared by all commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/pixelc/internal/imageio"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// ErrUsage indicates an error in command-line usage or configuration.
var ErrUsage = errors.New("usage error")

// ErrEmptyKey is returned when the resolved key is empty.
var ErrEmptyKey = errors.New("key must not be empty")

// Key holds the passphrase, given either inline or as a file.
type Key struct {
	String string `label:"--key"      mapstructure:"key"      validate:"required_without=File,exclusive=File"`
	File   string `label:"--key-file" mapstructure:"key-file"`
}

// Stream names the pixelcipher stream format.
type Stream struct {
	Format string `label:"--format" mapstructure:"format" validate:"format"`
}

// Suffixes are appended to output file names.
type Suffixes struct {
	Encrypt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `label:"--decrypt-ext" mapstructure:"decrypt-ext" validate:"required"`
}

// Patterns select the files to process.
type Patterns struct {
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `label:"--include-from" mapstructure:"include-from" validate:"omitempty,file"`
	ExcludeFrom string   `label:"--exclude-from" mapstructure:"exclude-from" validate:"omitempty,file"`
	IgnoreCase  bool     `mapstructure:"ignore-case"`
}

// Server configures the HTTP front end.
type Server struct {
	Addr      string `label:"--addr"       mapstructure:"addr"       validate:"required,hostname_port"`
	MaxUpload int64  `label:"--max-upload" mapstructure:"max-upload" validate:"gt=0"`
	MaxPixels int    `label:"--max-pixels" mapstructure:"max-pixels" validate:"gt=0"`
}

// Config is the union of all command options.
type Config struct {
	// Show prints the configuration and exits
	Show bool `mapstructure:"show"`

	Key      Key      `mapstructure:",squash"`
	Stream   Stream   `mapstructure:",squash"`
	Suffixes Suffixes `mapstructure:",squash"`
	Patterns Patterns `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash" validate:"-"`

	// Output is the image format written for results.
	Output string `label:"--output-format" mapstructure:"output-format" validate:"output"`

	Parallel           int  `label:"--parallel"            mapstructure:"parallel" validate:"gte=1"`
	Quiet              bool `mapstructure:"quiet"`
	Delete             bool `mapstructure:"delete"`
	Dry                bool `mapstructure:"dry"`
	Stats              bool `mapstructure:"stats"`
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Set by the subcommand, not by flags.
	Decrypt bool `mapstructure:"-"`

	// Positional arguments
	Files []string `label:"paths" mapstructure:"-" validate:"min=1"`
}

// Display returns the value of the Show field.
func (c *Config) Display() bool {
	return c.Show
}

// Validate validates config, the whole Config or one of its parts, against the struct tags.
// It returns a wrapped ErrUsage if any validation rules are violated.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerRules(validator); err != nil {
		return err
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	default:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}
}

// CipherFormat parses the stream format.
func (c *Config) CipherFormat() (pixelcipher.Format, error) {
	return pixelcipher.ParseFormat(c.Stream.Format)
}

// Passphrase resolves the key from --key or --key-file.
// One trailing newline is stripped from key files.
func (c *Config) Passphrase() (string, error) {
	key := c.Key.String

	if c.Key.File != "" {
		data, err := os.ReadFile(c.Key.File)
		if err != nil {
			return "", fmt.Errorf("reading key file: %w", err)
		}

		key = strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	}

	if key == "" {
		return "", ErrEmptyKey
	}

	return key, nil
}

// OutputExt returns the file extension matching Output.
func (c *Config) OutputExt() string {
	if c.Output == "" {
		return "." + imageio.PNG
	}

	return "." + strings.ToLower(c.Output)
}
