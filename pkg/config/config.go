// Package config holds user settings for the fc command: a TOML file under
// the XDG config directory, overridden by FRIENDLY_* environment variables
// which may come from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "FRIENDLY_"

// Config holds fc configuration.
type Config struct {
	Locale string      `toml:"locale"`
	Debug  bool        `toml:"debug"`
	Log    LogConfig   `toml:"log"`
	Watch  WatchConfig `toml:"watch"`
	UI     UIConfig    `toml:"ui"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// WatchConfig controls live reload of chart documents.
type WatchConfig struct {
	Enabled        bool `toml:"enabled"`
	DebounceMS     int  `toml:"debounce_ms"`
	PollIntervalMS int  `toml:"poll_interval_ms"`
	ForcePoll      bool `toml:"force_poll"`
}

// UIConfig controls the terminal viewer.
type UIConfig struct {
	ShowDescription bool `toml:"show_description"`
	LabelWidth      int  `toml:"label_width"`
	Markdown        bool `toml:"markdown"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Locale: "en-US",
		Log:    LogConfig{Level: "warn"},
		Watch:  WatchConfig{Enabled: true, DebounceMS: 150, PollIntervalMS: 1000},
		UI:     UIConfig{ShowDescription: true, LabelWidth: 32, Markdown: true},
	}
}

// Debounce returns the watch debounce window
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// PollInterval returns the polling interval used without file notifications
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollIntervalMS) * time.Millisecond
}

// ConfigDir returns the fc config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "friendly_charts")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file and applies environment overrides. A missing
// or unreadable file yields the defaults.
func Load() *Config {
	cfg, err := LoadFile(Path())
	if err != nil {
		cfg = Default()
	}
	ApplyEnv(cfg)
	return cfg
}

// LoadFile reads a config file on top of the defaults
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from FRIENDLY_* variables. Malformed values are
// ignored.
func ApplyEnv(cfg *Config) {
	cfg.Locale = envString("LOCALE", cfg.Locale)
	cfg.Debug = envBool("DEBUG", cfg.Debug)
	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Watch.Enabled = envBool("WATCH", cfg.Watch.Enabled)
	cfg.Watch.DebounceMS = envInt("DEBOUNCE_MS", cfg.Watch.DebounceMS)
	cfg.Watch.PollIntervalMS = envInt("POLL_INTERVAL_MS", cfg.Watch.PollIntervalMS)
	cfg.Watch.ForcePoll = envBool("FORCE_POLL", cfg.Watch.ForcePoll)
	cfg.UI.LabelWidth = envInt("LABEL_WIDTH", cfg.UI.LabelWidth)
	cfg.UI.Markdown = envBool("MARKDOWN", cfg.UI.Markdown)
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
