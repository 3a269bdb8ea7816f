package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".filemockrc.yaml", ".filemockrc.yml"}

// FindLocalConfig searches for .filemockrc.yaml or .filemockrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a Config from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, path string) (*Config, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, newConfigError(path, err)
	}

	var cfg Config
	if len(node.Content) > 0 {
		if err := node.Decode(&cfg); err != nil {
			return nil, newConfigError(path, err)
		}
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		if e.Column > 0 {
			return e.Path + " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + "): " + e.Message
		}
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)(?::(\d+))?`)

// newConfigError extracts the location yaml.v3 embeds in its messages.
func newConfigError(path string, err error) *ConfigError {
	msg := err.Error()
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}

	ce := &ConfigError{Path: path, Message: msg}
	if m := yamlLinePattern.FindStringSubmatch(msg); m != nil {
		ce.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			ce.Column, _ = strconv.Atoi(m[2])
		}
	}
	return ce
}

// LoadAll loads configuration from defaults, the config file and the
// environment. Flags are applied by the caller with MergeConfig.
// explicitPath, when set, names the config file and must exist.
func LoadAll(explicitPath string) (*Config, error) {
	cfg := NewDefault()

	path := explicitPath
	if path == "" {
		path = ConfigFileFromEnv()
	}
	required := path != ""
	if path == "" {
		local, err := FindLocalConfig()
		if err != nil {
			return nil, err
		}
		path = local
	}

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			if !required && errors.Is(err, os.ErrNotExist) {
				fileCfg = nil
			} else {
				return nil, err
			}
		}
		if fileCfg != nil {
			fileCfg.ConfigFile = path
			MergeConfig(cfg, fileCfg, SourceFile)
		}
	}

	LoadEnvConfig(cfg)
	if explicitPath != "" {
		cfg.ConfigFile = explicitPath
	}

	return cfg, nil
}
