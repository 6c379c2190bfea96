package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/pixelc/internal/config"
)

// paths resolves positional args into cfg.Files, defaulting to the working directory.
func paths(cfg *config.Config, args []string) {
	if len(args) == 0 {
		cfg.Files = []string{"."}
	} else {
		cfg.Files = args
	}
}

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		paths(cfg, args)

		return cobraext.Validate(cfg, cfg)
	}
}
