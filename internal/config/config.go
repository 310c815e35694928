// Package config loads application configuration from a TOML file with
// environment variable overrides.
//
// Precedence, lowest to highest: built-in defaults, the config file,
// NOTEBAR_* environment variables. A missing config file is not an
// error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable overrides.
const (
	EnvSettingsDir = "NOTEBAR_SETTINGS_DIR"
	EnvScriptsDir  = "NOTEBAR_SCRIPTS_DIR"
	EnvLocale      = "NOTEBAR_LOCALE"
	EnvKernelName  = "NOTEBAR_KERNEL"
	EnvDebounceMS  = "NOTEBAR_DEBOUNCE_MS"
)

// Config holds application settings.
type Config struct {
	// SettingsDir is where plugin schema and user settings files live.
	SettingsDir string `toml:"settings_dir"`

	// ScriptsDir is where Lua toolbar scripts live. Optional.
	ScriptsDir string `toml:"scripts_dir"`

	// Locale selects the translation bundle, e.g. "es" or "fr-CA".
	Locale string `toml:"locale"`

	// KernelName is the display name of the local kernel.
	KernelName string `toml:"kernel_name"`

	// DebounceMS is the settings file watcher debounce in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SettingsDir: "settings",
		ScriptsDir:  "scripts",
		Locale:      "en",
		KernelName:  "Python 3",
		DebounceMS:  100,
	}
}

// Debounce returns the watcher debounce as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the config file at path and applies environment
// overrides. A missing file yields defaults with overrides applied.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ParseError{Path: path, Err: err}
		}
	}

	cfg.applyEnv()
	return cfg, cfg.validate()
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/notebar/config.toml or its home-relative fallback.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "notebar", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "notebar", "config.toml")
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvSettingsDir); ok {
		c.SettingsDir = v
	}
	if v, ok := os.LookupEnv(EnvScriptsDir); ok {
		c.ScriptsDir = v
	}
	if v, ok := os.LookupEnv(EnvLocale); ok {
		c.Locale = v
	}
	if v, ok := os.LookupEnv(EnvKernelName); ok {
		c.KernelName = v
	}
	if v, ok := os.LookupEnv(EnvDebounceMS); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			c.DebounceMS = ms
		}
	}
}

func (c Config) validate() error {
	if c.SettingsDir == "" {
		return fmt.Errorf("settings_dir must not be empty")
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative")
	}
	return nil
}
