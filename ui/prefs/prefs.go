// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "preferences.json"

// Prefs stores persisted application preferences. Zero values mean "not
// set"; callers apply their own defaults.
type Prefs struct {
	WindowWidth   float64 `json:"window_width,omitempty"`
	WindowHeight  float64 `json:"window_height,omitempty"`
	LastDirectory string  `json:"last_directory,omitempty"`
	LastImage     string  `json:"last_image,omitempty"`
	Zoom          float64 `json:"zoom,omitempty"`

	path string
}

// Load reads preferences from ~/.config/roi-extractor/preferences.json.
// Returns zero-valued Prefs if the file doesn't exist or is unreadable.
func Load() *Prefs {
	p := &Prefs{}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "roi-extractor", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
