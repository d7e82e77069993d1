// Package config loads user settings from .mw/config.yaml and discovers menu
// definition files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-project settings directory.
	Dir = ".mw"
	// FileName is the config file inside Dir.
	FileName = "config.yaml"

	EnvConfig = "MW_CONFIG"
	EnvState  = "MW_STATE"
)

// Config represents a user configuration file (.mw/config.yaml)
type Config struct {
	// Theme selects the color palette: dark or light
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// Glyphs selects check and arrow symbols: unicode or ascii
	Glyphs string `yaml:"glyphs,omitempty" json:"glyphs,omitempty"`

	// Direction is ltr or rtl
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"`

	// Menu is the definition file opened when none is given on the command line
	Menu string `yaml:"menu,omitempty" json:"menu,omitempty"`

	// StatePath is the SQLite file for checked state and history (default: .mw/state.db)
	StatePath string `yaml:"state_path,omitempty" json:"state_path,omitempty"`

	Layout LayoutConfig `yaml:"layout,omitempty" json:"layout,omitempty"`

	// Keys overrides key bindings per action, e.g. down: [j, down]
	Keys map[string][]string `yaml:"keys,omitempty" json:"keys,omitempty"`

	Discovery DiscoveryConfig `yaml:"discovery,omitempty" json:"discovery,omitempty"`

	// Shell runs exec actions (default: sh)
	Shell string `yaml:"shell,omitempty" json:"shell,omitempty"`
}

// LayoutConfig controls rendering
type LayoutConfig struct {
	MaxLabelWidth int  `yaml:"max_label_width,omitempty" json:"max_label_width,omitempty"`
	ShowTabStops  bool `yaml:"show_tab_stops,omitempty" json:"show_tab_stops,omitempty"`
	Mouse         bool `yaml:"mouse,omitempty" json:"mouse,omitempty"`
}

// DiscoveryConfig configures scanning for definition files
type DiscoveryConfig struct {
	ScanPaths []string `yaml:"scan_paths,omitempty" json:"scan_paths,omitempty"`
	MaxDepth  int      `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
}

// Actions are the names accepted in Config.Keys.
var Actions = []string{"up", "down", "left", "right", "home", "end", "activate", "tab", "blur", "outline", "help", "copy", "quit"}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() Config {
	return Config{
		Theme:  "dark",
		Glyphs: "unicode",
		Layout: LayoutConfig{
			MaxLabelWidth: 32,
			Mouse:         true,
		},
		Discovery: DiscoveryConfig{
			ScanPaths: []string{"."},
			MaxDepth:  3,
		},
		Shell: "sh",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Theme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("invalid theme: %s (expected dark or light)", c.Theme)
	}
	switch c.Glyphs {
	case "", "unicode", "ascii":
	default:
		return fmt.Errorf("invalid glyphs: %s (expected unicode or ascii)", c.Glyphs)
	}
	switch c.Direction {
	case "", "ltr", "rtl":
	default:
		return fmt.Errorf("invalid direction: %s", c.Direction)
	}
	if c.Layout.MaxLabelWidth < 0 {
		return fmt.Errorf("layout.max_label_width cannot be negative")
	}
	if c.Discovery.MaxDepth < 0 {
		return fmt.Errorf("discovery.max_depth cannot be negative")
	}
	for action, keys := range c.Keys {
		if !slices.Contains(Actions, action) {
			return fmt.Errorf("unknown key action: %s", action)
		}
		if len(keys) == 0 {
			return fmt.Errorf("key action %s has no keys", action)
		}
	}
	return nil
}

// LoadConfig loads and validates a config file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// FindConfig walks up from dir looking for .mw/config.yaml.
// Returns os.ErrNotExist when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, Dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Load resolves the config for the working directory: $MW_CONFIG first,
// then the nearest .mw/config.yaml, then defaults. $MW_STATE overrides the
// state path. The returned path is empty when defaults are used.
func Load(cwd string) (*Config, string, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		found, err := FindConfig(cwd)
		if err == nil {
			path = found
		}
	}

	var cfg *Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	} else {
		d := DefaultConfig()
		cfg = &d
	}
	if s := os.Getenv(EnvState); s != "" {
		cfg.StatePath = s
	}
	return cfg, path, nil
}

// ResolvedStatePath returns the absolute state DB path for a project.
func (c *Config) ResolvedStatePath(projectDir string) string {
	if c.StatePath == "" {
		return filepath.Join(projectDir, Dir, "state.db")
	}
	p := expandHome(c.StatePath)
	if !filepath.IsAbs(p) {
		p = filepath.Join(projectDir, p)
	}
	return p
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
