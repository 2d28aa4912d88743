package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Following the dot-config convention the rest of the tooling uses:
// User config: ~/.config/quill/quill.yaml (or $XDG_CONFIG_HOME/quill/)

const (
	// ConfigDir is the subdirectory name under .config
	ConfigDir = "quill"
	// ConfigFile is the filename of the user configuration
	ConfigFile = "quill.yaml"

	// DefaultBranch is used when the config file does not set one
	DefaultBranch = "main"
)

// Config holds user-level settings for quill.
type Config struct {
	// RulesDir points at the rule document library. Empty means
	// "resolve automatically" (flag, env, executable-adjacent, embedded).
	RulesDir string `yaml:"rules_dir,omitempty"`

	// DefaultBranch is the initial branch for repositories quill creates.
	DefaultBranch string `yaml:"default_branch"`

	// Private makes remote repositories private by default.
	Private bool `yaml:"private"`
}

// Paths holds the filesystem locations quill reads and writes.
type Paths struct {
	Home          string
	UserConfigDir string // ~/.config/quill
	ConfigFile    string // ~/.config/quill/quill.yaml
}

// GetPaths returns the standard paths for quill.
func GetPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Follow XDG Base Directory spec
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	userConfigDir := filepath.Join(configHome, ConfigDir)

	return &Paths{
		Home:          home,
		UserConfigDir: userConfigDir,
		ConfigFile:    filepath.Join(userConfigDir, ConfigFile),
	}, nil
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{DefaultBranch: DefaultBranch}
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.DefaultBranch == "" {
		cfg.DefaultBranch = DefaultBranch
	}

	return cfg, nil
}

// Save writes the config file, creating its directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
