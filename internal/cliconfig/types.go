package cliconfig

import "time"

// Config represents the complete configuration for the filemock CLI.
type Config struct {
	// Proxy settings
	Port int `yaml:"port" json:"port"`

	// Mock engine settings
	MockPaths    []string      `yaml:"mockPaths" json:"mockPaths"`
	FetchTimeout time.Duration `yaml:"fetchTimeout" json:"fetchTimeout"`

	// Interception scope (shell-style patterns)
	IncludeHosts []string `yaml:"includeHosts,omitempty" json:"includeHosts,omitempty"`
	ExcludeHosts []string `yaml:"excludeHosts,omitempty" json:"excludeHosts,omitempty"`
	IncludePaths []string `yaml:"includePaths,omitempty" json:"includePaths,omitempty"`
	ExcludePaths []string `yaml:"excludePaths,omitempty" json:"excludePaths,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)
