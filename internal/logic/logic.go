// Package logic implements the commands of the application on top of the pixel cipher.
package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/encryption"
	"github.com/idelchi/pixelc/internal/filter"
	"github.com/idelchi/pixelc/pkg/pathmatch"
)

// Run encrypts or decrypts the configured files.
func Run(cfg *config.Config) error {
	return run(cfg, os.Stdout, os.Stderr)
}

func run(cfg *config.Config, stdout, stderr io.Writer) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		return dryRun(cfg, scanned, excluded, start, stdout, stderr)
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	proc.SetOutput(stdout, stderr)

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(stderr, scanned, excluded, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// defaultPatterns returns the include/exclude patterns applied when none are configured.
// Encryption takes every image except earlier ciphertexts; decryption takes only ciphertexts.
func defaultPatterns(cfg *config.Config) (includes, excludes []string) {
	ciphertexts := "*" + cfg.Suffixes.Encrypt + ".{png,bmp,tiff}"

	if cfg.Decrypt {
		return []string{ciphertexts}, nil
	}

	return []string{filter.Images}, []string{ciphertexts}
}

// loadPatterns merges CLI and file-based include/exclude patterns.
// With withDefaults, an empty side falls back to defaultPatterns.
func loadPatterns(cfg *config.Config, withDefaults bool) (includes, excludes []string, err error) {
	includes, err = filter.Merge(cfg.Patterns.Include, cfg.Patterns.IncludeFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("loading include patterns: %w", err)
	}

	excludes, err = filter.Merge(cfg.Patterns.Exclude, cfg.Patterns.ExcludeFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
	}

	if !withDefaults {
		return includes, excludes, nil
	}

	defaultIncludes, defaultExcludes := defaultPatterns(cfg)

	if len(cfg.Patterns.Include) == 0 && cfg.Patterns.IncludeFrom == "" {
		includes = defaultIncludes
	}

	if len(cfg.Patterns.Exclude) == 0 && cfg.Patterns.ExcludeFrom == "" {
		excludes = defaultExcludes
	}

	return includes, excludes, nil
}

// resolveFiles expands directories and applies include/exclude filtering.
// Returns the total number of files scanned before filtering.
func resolveFiles(cfg *config.Config) (int, error) {
	includes, excludes, err := loadPatterns(cfg, true)
	if err != nil {
		return 0, err
	}

	flt, err := filter.NewFilter(includes, excludes, pathmatch.IgnoreCase(cfg.Patterns.IgnoreCase))
	if err != nil {
		return 0, err
	}

	files, scanned, err := filter.Resolve(cfg.Files, flt)
	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func dryRun(cfg *config.Config, scanned, excluded int, start time.Time, stdout, stderr io.Writer) error {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Fprintf(stdout, "Would process %q -> %q\n", file, encryption.OutputPath(file, cfg))
		}

		if info, err := os.Stat(file); err == nil {
			totalSize += info.Size()
		}
	}

	if cfg.Stats {
		printStats(stderr, scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}

	return nil
}

func printStats(w io.Writer, scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(w, "  Processed: %d\n", processed)
	fmt.Fprintf(w, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
