// Command pixelc obfuscates images with a keyed, reversible pixel cipher.
//
// Usage:
//
//	# Obfuscate every image below the working directory
//	pixelc encrypt -k secret
//
//	# Restore them
//	pixelc decrypt -k secret
//
//	# Serve the upload form on 127.0.0.1:5000
//	pixelc serve
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/pixelc/internal/commands"
	"github.com/idelchi/pixelc/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := config.Config{}

	root := commands.NewRootCommand(&cfg, version)

	switch err := root.Execute(); {
	case errors.Is(err, cobraext.ErrExitGracefully):
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
