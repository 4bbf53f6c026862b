package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for printsweep. Nil
// fields are unset and fall through to the next layer.
type FileConfig struct {
	Categories      []string `yaml:"categories,omitempty"`
	Include         *string  `yaml:"include,omitempty"`
	Exclude         *string  `yaml:"exclude,omitempty"`
	Extensions      []string `yaml:"extensions,omitempty"`
	MaxBytes        *int64   `yaml:"max_bytes,omitempty"`
	Namespace       *string  `yaml:"namespace,omitempty"`
	NoColor         *bool    `yaml:"no_color,omitempty"`
	DefaultExcludes *bool    `yaml:"default_excludes,omitempty"`
	LogLevel        *string  `yaml:"log_level,omitempty"`
	Audit           *bool    `yaml:"audit,omitempty"`
	NoCache         *bool    `yaml:"no_cache,omitempty"`
}

// LocalNames are the repo-local config file names, in search order.
var LocalNames = []string{".printsweep.yml", ".printsweep.yaml", "printsweep.yml", "printsweep.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// GlobalPath returns $XDG_CONFIG_HOME/printsweep/config.yml, falling back to
// ~/.config. It is empty when neither can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "printsweep", "config.yml")
}

// LoadGlobal loads the global config file.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Write marshals fc as YAML to path.
func Write(path string, fc FileConfig) error {
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
