package logic

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/server"
)

// RunServe starts the HTTP front end and blocks until interrupted.
func RunServe(cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Listening on http://%s (format %s, uploads up to %s)\n",
			cfg.Server.Addr, cfg.Stream.Format, humanize.IBytes(uint64(cfg.Server.MaxUpload))) //nolint:gosec // validated > 0
	}

	return srv.Run(ctx)
}
