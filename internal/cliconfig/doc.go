// Package cliconfig provides configuration types and loading for the filemock CLI.
//
// It implements a layered configuration system with the following precedence
// (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (MOCK_PATHS and the FILEMOCK_* prefix)
//  3. Config file (FILEMOCK_CONFIG, --config, or .filemockrc.yaml in the
//     current directory)
//  4. Default values
//
// It tracks the source of each configuration value for debugging purposes.
package cliconfig
