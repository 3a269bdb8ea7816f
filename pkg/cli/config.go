package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/getmockd/filemock/internal/cliconfig"
	"github.com/getmockd/filemock/pkg/engine"
	"github.com/getmockd/filemock/pkg/fetch"
	"github.com/getmockd/filemock/pkg/logging"
)

// loadConfig resolves the effective configuration for cmd. apply, when
// set, copies command-specific flags into the flag layer.
func loadConfig(cmd *cobra.Command, apply func(flags *cliconfig.Config)) (*cliconfig.Config, error) {
	cfg, err := cliconfig.LoadAll(configFile)
	if err != nil {
		return nil, err
	}

	flagCfg := &cliconfig.Config{}
	if cmd.Flags().Changed("mocks") {
		flagCfg.MockPaths = mockPaths
	}
	if cmd.Flags().Changed("log-level") {
		flagCfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		flagCfg.LogFormat = logFormat
	}
	if apply != nil {
		apply(flagCfg)
	}
	cliconfig.MergeConfig(cfg, flagCfg, cliconfig.SourceFlag)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the process logger. Logs go to w so stdout stays
// reserved for command output.
func newLogger(cfg *cliconfig.Config, w io.Writer) *slog.Logger {
	lc := cfg.LoggingConfig()
	lc.Output = w
	return logging.New(lc)
}

// newEngine builds the mock engine for cfg.
func newEngine(cfg *cliconfig.Config, logger *slog.Logger) *engine.Engine {
	return engine.New(engine.Options{
		Patterns: cfg.MockPaths,
		Fetcher: fetch.New(fetch.Options{
			Timeout: cfg.FetchTimeout,
			Logger:  logger,
		}),
		Logger: logger,
	})
}
