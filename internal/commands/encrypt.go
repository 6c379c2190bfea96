package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] [paths/patterns...]",
		Aliases: []string{"enc"},
		Short:   "Obfuscate images",
		Long: `Obfuscate images by masking every channel and shuffling its pixels.
Without paths, every image below the working directory is processed,
skipping earlier results.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
