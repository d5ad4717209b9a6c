// Package state keeps view preferences that should survive a restart but
// are not part of the note collection or the user's config.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent view preferences.
type State struct {
	Sort       string `json:"sort"`                 // "modified", "created" or "pinned"
	TagFilter  string `json:"tagFilter"`            // "all" or a tag
	SelectedID int64  `json:"selectedId,omitempty"` // card under the cursor
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

func defaults() *State {
	return &State{Sort: "modified", TagFilter: "all"}
}

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "notecard"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, current); err != nil {
		current = defaults()
		return err
	}
	return nil
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Get returns a copy of the current state.
func Get() State {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return *defaults()
	}
	return *current
}

// SetView saves sort and tag filter together.
func SetView(sort, tag string) error {
	mu.Lock()
	if current == nil {
		current = defaults()
	}
	current.Sort = sort
	current.TagFilter = tag
	mu.Unlock()
	return Save()
}

// SetSelectedID saves the card under the cursor.
func SetSelectedID(id int64) error {
	mu.Lock()
	if current == nil {
		current = defaults()
	}
	current.SelectedID = id
	mu.Unlock()
	return Save()
}
