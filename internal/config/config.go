// Package config loads server settings from defaults, an optional YAML file
// and JUNITGUIDE_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pthm/junitguide/internal/log"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "JUNITGUIDE_"

// Theme selects the initial theme of a fresh page.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Config holds every runtime setting.
type Config struct {
	Addr string `koanf:"addr"`
	// Secret keys the prop signatures. Empty means a random key per process,
	// which invalidates open pages on restart.
	Secret          string        `koanf:"secret"`
	Theme           Theme         `koanf:"theme"`
	ContentFile     string        `koanf:"content_file"`
	LogLevel        string        `koanf:"log_level"`
	LogFormat       string        `koanf:"log_format"`
	Gzip            bool          `koanf:"gzip"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		Theme:           ThemeSystem,
		LogLevel:        "info",
		LogFormat:       "text",
		Gzip:            true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error; an empty
// path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// JUNITGUIDE_LOG_LEVEL -> log_level, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

var validThemes = map[Theme]bool{
	ThemeSystem: true,
	ThemeLight:  true,
	ThemeDark:   true,
}

// Validate checks that the configuration contains valid values. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	} else if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		errs = append(errs, fmt.Errorf("invalid addr %q: %w", c.Addr, err))
	}
	if !validThemes[c.Theme] {
		errs = append(errs, fmt.Errorf("invalid theme %q: must be one of system, light, dark", c.Theme))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		errs = append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	if !log.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log_format %q: must be one of text, logfmt, json", c.LogFormat))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown_timeout must be non-negative"))
	}

	return errors.Join(errs...)
}

// InitialDark resolves the theme setting against a client preference.
// hinted is false when the client sent no usable preference.
func (c *Config) InitialDark(prefersDark, hinted bool) bool {
	switch c.Theme {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		return hinted && prefersDark
	}
}
