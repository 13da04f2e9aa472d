package domain

import (
	"fmt"
	"time"
)

const (
	DefaultTimeout      = 2500 * time.Millisecond
	DefaultConcurrency  = 4
	DefaultMaxBodyBytes = 1 << 20
	DefaultUserAgent    = "fingerprinter/1.0"
)

// ValidLogFormats enumerates accepted logging.format values.
var ValidLogFormats = []string{"text", "json"}

// ValidLogLevels enumerates accepted logging.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Settings holds runtime configuration loaded from .fingerprinter.yaml.
type Settings struct {
	Rules        string          `yaml:"rules"          json:"rules,omitempty"`
	Timeout      time.Duration   `yaml:"timeout"        json:"timeout"`
	Concurrency  int             `yaml:"concurrency"    json:"concurrency"`
	UserAgent    string          `yaml:"user_agent"     json:"user_agent"`
	MaxBodyBytes int64           `yaml:"max_body_bytes" json:"max_body_bytes"`
	Logging      LoggingSettings `yaml:"logging"        json:"logging"`
}

// LoggingSettings selects the slog handler and level.
type LoggingSettings struct {
	Format string `yaml:"format" json:"format"`
	Level  string `yaml:"level"  json:"level"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Timeout:      DefaultTimeout,
		Concurrency:  DefaultConcurrency,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Logging:      LoggingSettings{Format: "text", Level: "warn"},
	}
}

// Validate checks the settings for invalid values and returns a descriptive error.
func (s Settings) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", s.Timeout)
	}
	if s.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", s.Concurrency)
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0 (got %d)", s.MaxBodyBytes)
	}
	if !contains(ValidLogFormats, s.Logging.Format) {
		return fmt.Errorf("unknown logging.format %q (valid: text, json)", s.Logging.Format)
	}
	if !contains(ValidLogLevels, s.Logging.Level) {
		return fmt.Errorf("unknown logging.level %q (valid: debug, info, warn, error)", s.Logging.Level)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
