package cliconfig

import "github.com/getmockd/filemock/pkg/fetch"

// DefaultPort is the default proxy listen port.
const DefaultPort = 8080

// DefaultFetchTimeout bounds "@@url" fetches.
const DefaultFetchTimeout = fetch.DefaultTimeout

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// NewDefault creates a new Config with default values. No mock paths are
// configured by default, which leaves the engine disabled.
func NewDefault() *Config {
	cfg := &Config{
		Port:         DefaultPort,
		FetchTimeout: DefaultFetchTimeout,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Sources:      make(map[string]string),
	}

	// Mark all as default source
	cfg.Sources["port"] = SourceDefault
	cfg.Sources["mockPaths"] = SourceDefault
	cfg.Sources["fetchTimeout"] = SourceDefault
	cfg.Sources["logLevel"] = SourceDefault
	cfg.Sources["logFormat"] = SourceDefault

	return cfg
}
