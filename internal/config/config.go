package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Config is the user configuration, stored as YAML.
type Config struct {
	// Storage selects the event store backend: "sqlite" (default) or "json".
	Storage string `yaml:"storage" json:"storage"`

	// DataDir holds the event store. Empty means <config dir>/data.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Locale selects month names and UI phrases: "en" (default) or "es".
	Locale string `yaml:"locale" json:"locale"`

	// WeekStart is the first column of the monthly grid: "sunday" (default) or "monday".
	WeekStart string `yaml:"week_start" json:"week_start"`

	// LogLevel is one of debug|info|error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogPath receives log lines while the TUI is running. Empty discards them.
	LogPath string `yaml:"log_path,omitempty" json:"log_path,omitempty"`

	// RestoreView reopens the TUI on the last view and date instead of this month.
	RestoreView bool `yaml:"restore_view" json:"restore_view"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage:   "sqlite",
		Locale:    "en",
		WeekStart: "sunday",
		LogLevel:  "info",
	}
}

// Normalize fills in missing values and replaces unknown ones with defaults.
func (c *Config) Normalize() {
	switch strings.ToLower(strings.TrimSpace(c.Storage)) {
	case "sqlite", "json":
		c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	default:
		c.Storage = "sqlite"
	}
	switch strings.ToLower(strings.TrimSpace(c.Locale)) {
	case "en", "es":
		c.Locale = strings.ToLower(strings.TrimSpace(c.Locale))
	default:
		c.Locale = "en"
	}
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "monday":
		c.WeekStart = "monday"
	default:
		c.WeekStart = "sunday"
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "error":
		c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		c.LogLevel = "info"
	}
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.LogPath = strings.TrimSpace(c.LogPath)
}

func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// ResolveDataDir returns DataDir or the default data dir under the config dir.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.calendar).
	if v := strings.TrimSpace(os.Getenv("CALENDAR_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".calendar"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the YAML config at path. On first run it writes the default
// config (0600) and returns it.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".calendar-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}
