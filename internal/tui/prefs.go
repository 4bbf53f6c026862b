package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/types"
)

// Prefs holds picker state that persists across sessions.
type Prefs struct {
	Categories []string `json:"categories"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	var names []string
	for _, c := range detectors.DefaultCategories() {
		names = append(names, string(c))
	}
	return Prefs{Categories: names}
}

func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".printsweep", "tui_prefs.json"), nil
}

// LoadPrefs loads user preferences from disk, returning defaults if not found.
func LoadPrefs() Prefs {
	prefs := DefaultPrefs()
	path, err := prefsPath()
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	var stored Prefs
	if json.Unmarshal(data, &stored) == nil && len(stored.Categories) > 0 {
		prefs = stored
	}
	return prefs
}

// SavePrefs persists user preferences to disk.
func SavePrefs(prefs Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// CategoryList parses the stored names, dropping any that are no longer known.
func (p Prefs) CategoryList() []types.Category {
	var out []types.Category
	for _, n := range p.Categories {
		if c, err := detectors.ParseCategory(n); err == nil {
			out = append(out, c)
		}
	}
	return out
}
