package cliconfig

import (
	"os"
	"strconv"
	"time"

	"github.com/getmockd/filemock/internal/discovery"
)

// Environment variable names
const (
	EnvMockPaths    = "MOCK_PATHS"
	EnvPort         = "FILEMOCK_PORT"
	EnvFetchTimeout = "FILEMOCK_FETCH_TIMEOUT"
	EnvLogLevel     = "FILEMOCK_LOG_LEVEL"
	EnvLogFormat    = "FILEMOCK_LOG_FORMAT"
	EnvConfig       = "FILEMOCK_CONFIG"
)

// LookupEnvFunc reads one environment variable.
type LookupEnvFunc func(key string) string

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *Config) {
	loadEnv(cfg, os.Getenv)
}

func loadEnv(cfg *Config, getenv LookupEnvFunc) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	// MOCK_PATHS
	if v := getenv(EnvMockPaths); v != "" {
		if patterns := discovery.SplitPatterns(v); len(patterns) > 0 {
			cfg.MockPaths = patterns
			cfg.Sources["mockPaths"] = SourceEnv
		}
	}

	// FILEMOCK_PORT
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
			cfg.Sources["port"] = SourceEnv
		}
	}

	// FILEMOCK_FETCH_TIMEOUT
	if v := getenv(EnvFetchTimeout); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = timeout
			cfg.Sources["fetchTimeout"] = SourceEnv
		}
	}

	// FILEMOCK_LOG_LEVEL
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	// FILEMOCK_LOG_FORMAT
	if v := getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	// FILEMOCK_CONFIG
	if v := getenv(EnvConfig); v != "" {
		cfg.ConfigFile = v
		cfg.Sources["configFile"] = SourceEnv
	}
}

// ConfigFileFromEnv returns the config file path from the environment.
// Returns empty string if not set.
func ConfigFileFromEnv() string {
	return os.Getenv(EnvConfig)
}
