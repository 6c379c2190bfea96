// Package commands provides the command-line interface for the pixelc tool.
//
// It implements commands for:
//   - encryption and decryption of image files
//   - checking include/exclude patterns
//   - printing the seed derived from a key
//   - serving the cipher over HTTP
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
