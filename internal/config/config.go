package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	UI      UIConfig      `json:"ui"`
	Keymap  KeymapConfig  `json:"keymap"`
	Log     LogConfig     `json:"log"`
}

// StorageConfig selects where notes live.
type StorageConfig struct {
	Backend string `json:"backend" validate:"oneof=sqlite dir memory"`
	Driver  string `json:"driver" validate:"oneof=sqlite sqlite3"` // sqlite backend only
	Path    string `json:"path"`                                     // empty = default under the config dir
}

// UIConfig configures the terminal view.
type UIConfig struct {
	ToastDuration time.Duration     `json:"toastDuration"`
	DeleteDelay   time.Duration     `json:"deleteDelay"`
	DateFormat    string            `json:"dateFormat" validate:"required"`
	CardWidth     int               `json:"cardWidth" validate:"min=20,max=120"`
	Markdown      bool              `json:"markdown"` // render the detail view with glamour
	Colors        map[string]string `json:"colors,omitempty"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level string `json:"level" validate:"oneof=debug info warn error"`
	File  string `json:"file"` // empty = notecard.log in the config dir
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Driver:  "sqlite",
		},
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
			DeleteDelay:   400 * time.Millisecond,
			DateFormat:    "Jan 2, 2006",
			CardWidth:     36,
			Markdown:      true,
			Colors:        make(map[string]string),
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate normalizes recoverable values and reports the rest.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.UI.ToastDuration <= 0 {
		c.UI.ToastDuration = 3 * time.Second
	}
	if c.UI.DeleteDelay < 0 {
		c.UI.DeleteDelay = 0
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s=%s)", fe.Namespace(), fe.Value(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
