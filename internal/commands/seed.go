package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/logic"
)

// NewSeedCommand creates a new cobra command for the seed subcommand.
func NewSeedCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [flags]",
		Short: "Print the seed and stream fingerprint derived from a key",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return cobraext.Validate(cfg, &cfg.Key, &cfg.Stream)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunSeed(cfg)
		},
	}
}
