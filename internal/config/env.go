package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// envOverrides lists the variables that override the config file.
type envOverrides struct {
	Data     string `env:"NOTECARD_DATA" env-description:"path of the notes database or directory"`
	Backend  string `env:"NOTECARD_BACKEND" env-description:"storage backend: sqlite, dir or memory"`
	Driver   string `env:"NOTECARD_DRIVER" env-description:"sqlite driver: sqlite (pure Go) or sqlite3 (cgo)"`
	LogLevel string `env:"NOTECARD_LOG_LEVEL" env-description:"debug, info, warn or error"`
}

// applyEnv loads .env files (working directory first, then dir) without
// overriding variables already set, and applies NOTECARD_* overrides.
func applyEnv(cfg *Config, dir string) error {
	for _, f := range []string{".env", filepath.Join(dir, ".env")} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	var env envOverrides
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if env.Data != "" {
		cfg.Storage.Path = env.Data
	}
	if env.Backend != "" {
		cfg.Storage.Backend = env.Backend
	}
	if env.Driver != "" {
		cfg.Storage.Driver = env.Driver
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	return nil
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	var env envOverrides
	text, err := cleanenv.GetDescription(&env, nil)
	if err != nil {
		return ""
	}
	return text
}
