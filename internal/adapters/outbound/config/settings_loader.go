package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fingerprinter/fingerprinter/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is read from the working directory when no --config is given.
const DefaultSettingsFile = ".fingerprinter.yaml"

// Environment overrides, applied after the file and before command-line flags.
const (
	EnvRules       = "FINGERPRINTER_RULES"
	EnvTimeout     = "FINGERPRINTER_TIMEOUT"
	EnvConcurrency = "FINGERPRINTER_CONCURRENCY"
	EnvLogFormat   = "FINGERPRINTER_LOG_FORMAT"
	EnvLogLevel    = "FINGERPRINTER_LOG_LEVEL"
)

// SettingsLoader reads domain.Settings from a YAML file plus environment overrides.
type SettingsLoader struct {
	getenv func(string) string
}

// NewSettingsLoader creates a SettingsLoader that reads overrides from the process environment.
func NewSettingsLoader() *SettingsLoader { return &SettingsLoader{getenv: os.Getenv} }

// WithEnv replaces the environment lookup, for tests.
func (l *SettingsLoader) WithEnv(getenv func(string) string) *SettingsLoader {
	l.getenv = getenv
	return l
}

// Load reads settings from path (DefaultSettingsFile when empty).
// Returns DefaultSettings if the file does not exist.
func (l *SettingsLoader) Load(path string) (domain.Settings, error) {
	if path == "" {
		path = DefaultSettingsFile
	}

	cfg := domain.DefaultSettings()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return domain.Settings{}, &domain.ConfigError{Source: path, Err: err}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Settings{}, &domain.ConfigError{Source: path, Err: fmt.Errorf("parsing %s: %w", path, err)}
		}
		// A relative rule file is relative to the settings file that names it.
		if cfg.Rules != "" && !filepath.IsAbs(cfg.Rules) {
			cfg.Rules = filepath.Join(filepath.Dir(path), cfg.Rules)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.Settings{}, &domain.ConfigError{Source: "environment", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return domain.Settings{}, &domain.ConfigError{Source: path, Err: err}
	}
	return cfg, nil
}

func (l *SettingsLoader) applyEnv(cfg *domain.Settings) error {
	if v := l.getenv(EnvRules); v != "" {
		cfg.Rules = v
	}
	if v := l.getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := l.getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConcurrency, err)
		}
		cfg.Concurrency = n
	}
	if v := l.getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := l.getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}
