package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	configFile string
	mockPaths  []string
	logLevel   string
	logFormat  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "filemock",
	Short: "filemock serves file-based mock responses from an HTTP proxy",
	Long: `filemock is an HTTP forward proxy that answers matching requests from
mock files on disk. Mock files are rediscovered on every request, so edits
take effect immediately.

Mock file locations are glob patterns given with --mocks or the MOCK_PATHS
environment variable (comma-separated). Without any pattern the proxy
forwards all traffic untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Path to YAML config file (or set FILEMOCK_CONFIG)")
	pf.StringSliceVarP(&mockPaths, "mocks", "m", nil, "Mock file glob patterns, comma-separated or repeated (or set MOCK_PATHS)")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
