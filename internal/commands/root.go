package commands

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"

	"github.com/idelchi/pixelc/internal/config"
	"github.com/idelchi/pixelc/internal/imageio"
	"github.com/idelchi/pixelc/pkg/pixelcipher"
)

// NewRootCommand creates the root command with common configuration.
// Flags declared here are shared by every subcommand.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "pixelc [flags] command [flags]"
	root.Short = "Keyed pixel obfuscation for images"
	root.Long = `A keyed, reversible image obfuscation utility.
Every channel is masked with a key-derived byte and its pixels are shuffled with
a key-derived permutation. The same key restores the image exactly, as long as
the result is stored losslessly. This is obfuscation, not encryption.

Every flag can also be set through the environment, e.g. PIXELC_KEY or PIXELC_KEY_FILE.`

	root.Flags().BoolP("show", "s", false, "Show the configuration and exit")

	flags := root.PersistentFlags()

	flags.StringP("key", "k", "", "Key to derive the seed from")
	flags.StringP("key-file", "f", "", "Path to a file holding the key")
	flags.String("format", pixelcipher.DefaultFormat.String(),
		"Keystream format, one of ["+strings.Join(pixelcipher.Formats(), ", ")+"]")
	flags.String("output-format", imageio.PNG,
		"Image format of results, one of ["+strings.Join(imageio.OutputFormats(), ", ")+"]")

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("delete", false, "Delete the original file after successful processing")
	flags.Bool("dry", false, "Show which files would be processed without writing anything")
	flags.Bool("stats", false, "Print a summary when done")
	flags.Bool("preserve-timestamps", false, "Copy modification times to the results")

	flags.StringSliceP("include", "i", nil, "Glob patterns of files to include, e.g. '**/*.{png,jpg}'")
	flags.StringSliceP("exclude", "e", nil, "Glob patterns of files to exclude")
	flags.String("include-from", "", "JSON(C) file with a list of include patterns")
	flags.String("exclude-from", "", "JSON(C) file with a list of exclude patterns")
	flags.Bool("ignore-case", false, "Match patterns case-insensitively")

	flags.String("encrypt-ext", ".enc", "Suffix appended to encrypted files, before the image extension")
	flags.String("decrypt-ext", ".dec", "Suffix appended to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewCheckCommand(cfg),
		NewSeedCommand(cfg),
		NewServeCommand(cfg),
	)

	return root
}
