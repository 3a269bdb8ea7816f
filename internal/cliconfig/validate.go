package cliconfig

import (
	"fmt"
	"strings"

	"github.com/getmockd/filemock/pkg/logging"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range (0-65535)", c.Port)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetchTimeout %s must not be negative", c.FetchTimeout)
	}
	if c.LogLevel != "" && !oneOf(c.LogLevel, validLogLevels) {
		return fmt.Errorf("logLevel %q is not one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.LogFormat != "" && !oneOf(c.LogFormat, validLogFormats) {
		return fmt.Errorf("logFormat %q is not one of %s", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// LoggingConfig returns the logging configuration for c.
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.LogLevel)
	lc.Format = logging.ParseFormat(c.LogFormat)
	return lc
}

func oneOf(s string, valid []string) bool {
	for _, v := range valid {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
