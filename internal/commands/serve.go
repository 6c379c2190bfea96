package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/logic"
)

// Default request limits of the serve command.
const (
	DefaultMaxUpload = 32 << 20
	DefaultMaxPixels = 1 << 26
)

// NewServeCommand creates a new cobra command for the serve subcommand.
func NewServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Serve an upload form and an HTTP API",
		Long: `Serve an upload form on / and a raw API on /api/encrypt and /api/decrypt.
The key is sent with every request; the server keeps no state.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return cobraext.Validate(cfg, &cfg.Server, &cfg.Stream)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunServe(cfg)
		},
	}

	cmd.Flags().String("addr", "127.0.0.1:5000", "Address to listen on")
	cmd.Flags().Int64("max-upload", DefaultMaxUpload, "Maximum request size in bytes")
	cmd.Flags().Int("max-pixels", DefaultMaxPixels, "Maximum number of pixels of an uploaded image")

	return cmd
}
