package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage StorageConfig `json:"storage"`
	UI      saveUIConfig  `json:"ui"`
	Keymap  KeymapConfig  `json:"keymap"`
	Log     LogConfig     `json:"log"`
}

type saveUIConfig struct {
	ToastDuration string            `json:"toastDuration"`
	DeleteDelay   string            `json:"deleteDelay"`
	DateFormat    string            `json:"dateFormat"`
	CardWidth     int               `json:"cardWidth"`
	Markdown      bool              `json:"markdown"`
	Colors        map[string]string `json:"colors,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: cfg.Storage,
		UI: saveUIConfig{
			ToastDuration: cfg.UI.ToastDuration.String(),
			DeleteDelay:   cfg.UI.DeleteDelay.String(),
			DateFormat:    cfg.UI.DateFormat,
			CardWidth:     cfg.UI.CardWidth,
			Markdown:      cfg.UI.Markdown,
			Colors:        cfg.UI.Colors,
		},
		Keymap: cfg.Keymap,
		Log:    cfg.Log,
	}
}

// Save writes the config to ~/.config/notecard/config.json.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path. Top-level keys that Config does not
// manage are carried over from the existing file.
func SaveTo(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("save config: no config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unparsable file is replaced wholesale.
		_ = json.Unmarshal(existing, &merged)
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
