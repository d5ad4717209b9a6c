package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/notecard"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	UI      rawUIConfig      `json:"ui"`
	Keymap  KeymapConfig     `json:"keymap"`
	Log     LogConfig        `json:"log"`
}

type rawStorageConfig struct {
	Backend string `json:"backend"`
	Driver  string `json:"driver"`
	Path    string `json:"path"`
}

type rawUIConfig struct {
	ToastDuration string            `json:"toastDuration"`
	DeleteDelay   string            `json:"deleteDelay"`
	DateFormat    string            `json:"dateFormat"`
	CardWidth     *int              `json:"cardWidth"`
	Markdown      *bool             `json:"markdown"`
	Colors        map[string]string `json:"colors"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path, then applies
// environment overrides. If path is empty, uses ~/.config/notecard/config.json.
func LoadFrom(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnv(cfg, filepath.Dir(resolvePath(path))); err != nil {
		return nil, err
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(path string) string {
	if path == "" {
		return ConfigPath()
	}
	return ExpandPath(path)
}

func loadFile(path string) (*Config, error) {
	cfg := Default()

	path = resolvePath(path)
	if path == "" {
		return cfg, nil // no home dir
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	mergeConfig(cfg, &raw)
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Driver != "" {
		cfg.Storage.Driver = raw.Storage.Driver
	}
	if raw.Storage.Path != "" {
		cfg.Storage.Path = raw.Storage.Path
	}

	// UI
	if raw.UI.ToastDuration != "" {
		if d, err := time.ParseDuration(raw.UI.ToastDuration); err == nil {
			cfg.UI.ToastDuration = d
		}
	}
	if raw.UI.DeleteDelay != "" {
		if d, err := time.ParseDuration(raw.UI.DeleteDelay); err == nil {
			cfg.UI.DeleteDelay = d
		}
	}
	if raw.UI.DateFormat != "" {
		cfg.UI.DateFormat = raw.UI.DateFormat
	}
	if raw.UI.CardWidth != nil {
		cfg.UI.CardWidth = *raw.UI.CardWidth
	}
	if raw.UI.Markdown != nil {
		cfg.UI.Markdown = *raw.UI.Markdown
	}
	maps.Copy(cfg.UI.Colors, raw.UI.Colors)

	// Keymap
	maps.Copy(cfg.Keymap.Overrides, raw.Keymap.Overrides)

	// Log
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Log.File != "" {
		cfg.Log.File = raw.Log.File
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Dir returns the notecard config directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points ConfigPath at path. For tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFile)
}

// DataPath returns where the configured backend keeps its data.
func (c *Config) DataPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case "dir":
		return filepath.Join(Dir(), "data")
	default:
		return filepath.Join(Dir(), "notecard.db")
	}
}

// LogPath returns the log file used by the terminal UI.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(Dir(), "notecard.log")
}
