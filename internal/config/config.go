package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents mojifix settings stored in the user's config directory.
// Command-line flags override these values for a single run.
type Config struct {
	Encoding EncodingConfig `toml:"encoding"`
	Table    TableConfig    `toml:"table"`
	Fix      FixConfig      `toml:"fix"`
	Journal  JournalConfig  `toml:"journal"`
}

// EncodingConfig declares how target files are read and written back.
type EncodingConfig struct {
	Source string `toml:"source" config:"encoding.source" default:"utf-8" desc:"Encoding used to read files"`
	Dest   string `toml:"dest" config:"encoding.dest" default:"utf-8-sig" desc:"Encoding used to write files back"`
}

// TableConfig selects the substitution table.
type TableConfig struct {
	Path string `toml:"path" config:"table.path" desc:"TOML substitution table (empty = built-in)"`
}

// FixConfig contains defaults for the fix command
type FixConfig struct {
	Workers int  `toml:"workers" config:"fix.workers" default:"4" min:"1" max:"64" desc:"Files repaired in parallel"`
	Backup  bool `toml:"backup" config:"fix.backup" default:"false" desc:"Keep <file>.bak with the original bytes"`
	Context int  `toml:"context" config:"fix.context" default:"3" min:"0" max:"20" desc:"Context lines in --dry-run diffs"`
}

// JournalConfig points at the optional repair journal.
type JournalConfig struct {
	URL string `toml:"url" config:"journal.url" desc:"postgres://… or sqlite:<path> (empty = off)"`
}

// Environment overrides, applied after the file is read.
const (
	EnvJournalURL = "MOJIFIX_JOURNAL_URL"
	EnvTable      = "MOJIFIX_TABLE"
	EnvConfig     = "MOJIFIX_CONFIG"
)

// DefaultConfig returns a config that reproduces the reference tool: read
// UTF-8, write UTF-8 with a byte-order marker, built-in table.
func DefaultConfig() *Config {
	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}

	return &Config{
		Encoding: EncodingConfig{
			Source: "utf-8",
			Dest:   "utf-8-sig",
		},
		Fix: FixConfig{
			Workers: workers,
			Context: 3,
		},
	}
}

// Path returns the path to the config file
// Follows XDG Base Directory spec on Linux, platform conventions elsewhere
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}

	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "mojifix")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "mojifix")
	default: // Linux and others - follow XDG
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "mojifix")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "mojifix")
		}
	}

	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist,
// and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFrom(Path())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults for any missing values
	defaults := DefaultConfig()

	if cfg.Encoding.Source == "" {
		cfg.Encoding.Source = defaults.Encoding.Source
	}
	if cfg.Encoding.Dest == "" {
		cfg.Encoding.Dest = defaults.Encoding.Dest
	}
	if cfg.Fix.Workers == 0 {
		cfg.Fix.Workers = defaults.Fix.Workers
	}
	// NOTE: Fix.Context is NOT defaulted here because 0 is a valid value.

	return cfg, nil
}

// ApplyEnv overrides file values with MOJIFIX_* environment variables.
// Overrides are never written back by Save when the config is loaded with
// LoadFrom.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvJournalURL); v != "" {
		c.Journal.URL = v
	}
	if v := os.Getenv(EnvTable); v != "" {
		c.Table.Path = v
	}
}

// Save writes the config file
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config file to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// GetValue returns a config value by key (uses reflection)
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a config value by key (uses reflection with validation)
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}
