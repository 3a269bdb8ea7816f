// Package cli provides the command-line interface for filemock.
//
// Commands:
//   - serve: Run the forward proxy with the file-based mock engine
//   - check: Discover and parse every mock file, reporting skipped files
//   - match: Run the engine for one synthetic request offline
//   - version: Show filemock version
//
// Configuration is layered as described in internal/cliconfig; command
// flags take precedence over the environment and config file.
package cli
