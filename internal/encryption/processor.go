package encryption

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/fileutil"
	"github.com/idelchi/pixelc/internal/imageio"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// Processor handles the encryption and decryption of image files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// cipher is safe for concurrent use by the workers
	cipher *pixelcipher.Cipher

	// key is the resolved passphrase
	key string

	// results channels processing outcomes to the printer goroutine
	results chan Result

	// stdout and stderr receive progress and error lines
	stdout io.Writer
	stderr io.Writer
}

// NewProcessor resolves the key and stream format from cfg.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	key, err := cfg.Passphrase()
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	format, err := cfg.CipherFormat()
	if err != nil {
		return nil, err
	}

	cipher, err := pixelcipher.New(pixelcipher.WithFormat(format))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return &Processor{
		cfg:     cfg,
		cipher:  cipher,
		key:     key,
		results: make(chan Result, len(cfg.Files)),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

// SetOutput redirects progress and error lines.
func (p *Processor) SetOutput(stdout, stderr io.Writer) {
	p.stdout = stdout
	p.stderr = stderr
}

// ProcessFiles concurrently processes all files specified in the configuration.
// It encrypts or decrypts files based on the configuration settings.
// Returns the number of successfully processed files, the number of errors and the bytes written.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(p.stderr, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			processed++

			totalSize += result.OutputSize

			if !p.cfg.Quiet {
				fmt.Fprintf(p.stdout, "Processed %q (%s) -> %q\n", result.Input, result.Format, result.Output)
			}

			if !p.cfg.Delete {
				continue
			}

			if err := os.Remove(result.Input); err != nil {
				fmt.Fprintf(p.stderr, "Error deleting %q: %v\n", result.Input, err)
			} else if !p.cfg.Quiet {
				fmt.Fprintf(p.stdout, "Deleted %q\n", result.Input)
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := OutputPath(file, p.cfg)

			size, format, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, OutputSize: size, Format: format}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// Transform decodes an image from r, runs the cipher and encodes the result to w
// in the configured output format. It returns the detected input format.
func (p *Processor) Transform(r io.Reader, w io.Writer) (string, error) {
	grid, format, err := imageio.Decode(r)
	if err != nil {
		return "", err
	}

	if p.cfg.Decrypt {
		grid, err = p.cipher.Decrypt(grid, p.key)
	} else {
		grid, err = p.cipher.Encrypt(grid, p.key)
	}

	if err != nil {
		return format, err
	}

	if err := imageio.Encode(w, grid, p.outputFormat()); err != nil {
		return format, err
	}

	return format, nil
}

// processFile handles the encryption or decryption of a single file.
// It writes to a temporary file and performs an atomic rename on completion.
func (p *Processor) processFile(filename, outPath string) (size int64, format string, err error) {
	if filepath.Clean(filename) == filepath.Clean(outPath) {
		return 0, "", fmt.Errorf("%w: %q", ErrSameFile, filename)
	}

	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, "", fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, "", fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	verb := "encrypting"
	if p.cfg.Decrypt {
		verb = "decrypting"
	}

	if format, err = p.Transform(inFile, tc.TmpFile); err != nil {
		return 0, format, fmt.Errorf("%s file: %w", verb, err)
	}

	if err := inFile.Close(); err != nil {
		return 0, format, fmt.Errorf("closing input file: %w", err)
	}

	size, err = tc.Commit(p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, format, fmt.Errorf("finalizing output: %w", err)
	}

	return size, format, nil
}

func (p *Processor) outputFormat() string {
	if p.cfg.Output == "" {
		return imageio.PNG
	}

	return p.cfg.Output
}

// OutputPath generates the output file path for filename.
// Encryption appends the encrypt suffix and the output extension ("a.jpg" -> "a.jpg.enc.png").
// Decryption first strips the extension and the encrypt suffix, then appends the decrypt
// suffix and the output extension ("a.jpg.enc.png" -> "a.jpg.dec.png").
func OutputPath(filename string, cfg *config.Config) string {
	suffix := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		stem := strings.TrimSuffix(filename, filepath.Ext(filename))
		if strings.HasSuffix(stem, cfg.Suffixes.Encrypt) {
			filename = strings.TrimSuffix(stem, cfg.Suffixes.Encrypt)
		}

		suffix = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+suffix+cfg.OutputExt())
}
