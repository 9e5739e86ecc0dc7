package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Default values.
const (
	DefaultDataFileName = ".todo_manager_todos.json"
	DefaultTheme        = "classic"
	DefaultColor        = "auto"
	DefaultLogLevel     = "info"
	DefaultReplInterval = time.Second

	appDir         = "todomgr"
	configFileName = "config.toml"
)

// Config holds the settings around the todo store. The data file location
// itself lives in the pointer file; DataFile is only the first-run fallback.
type Config struct {
	DataFile     string `toml:"data_file"`
	Theme        string `toml:"theme"`
	Color        string `toml:"color"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
	ReplInterval string `toml:"repl_interval"`

	// ReplDelay is ReplInterval parsed.
	ReplDelay time.Duration `toml:"-"`
	// File is the config file that was read, if any.
	File string `toml:"-"`
}

// UserConfigFile returns the default config file location.
func UserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appDir, configFileName)
}

// Load builds the configuration. An explicit path must exist; the default user
// file is optional.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if p := UserConfigFile(); fileExists(p) {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DataFile = filepath.Join(home, DefaultDataFileName)
	}
	cfg.Theme = DefaultTheme
	cfg.Color = DefaultColor
	cfg.LogLevel = DefaultLogLevel
	cfg.ReplInterval = DefaultReplInterval.String()
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.File = path
	return nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODOMGR_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TODOMGR_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODOMGR_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv("TODOMGR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODOMGR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODOMGR_REPL_INTERVAL"); v != "" {
		cfg.ReplInterval = v
	}
}

// Finalize normalizes and validates the values. It is safe to call again after
// flags have overridden fields.
func (c *Config) Finalize() error {
	c.DataFile = expandPath(c.DataFile)
	c.LogFile = expandPath(c.LogFile)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme %q: want classic, neon or mono", c.Theme)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: want auto, always or never", c.Color)
	}

	if c.ReplInterval == "" {
		c.ReplDelay = 0
		return nil
	}
	d, err := time.ParseDuration(c.ReplInterval)
	if err != nil {
		return fmt.Errorf("invalid repl_interval: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("invalid repl_interval %q: negative", c.ReplInterval)
	}
	c.ReplDelay = d
	return nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
