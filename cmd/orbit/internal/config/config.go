// Package config provides the configuration system for the orbit CLI.
//
// Configuration is stored under os.UserConfigDir()/orbit/:
//
//	~/Library/Application Support/orbit/   (macOS)
//	~/.config/orbit/                       (Linux)
//	%AppData%/orbit/                       (Windows)
//
// Layout:
//
//	orbit/
//	├── config.yaml    # API key, model, defaults, export backend
//	└── data/          # BadgerDB history archive
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/eburon/orbit/pkg/prompt"
	"github.com/eburon/orbit/pkg/session"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "orbit"

	configFile = "config.yaml"
	dataDir    = "data"
)

// Defaults are the session values applied when a user has no overrides.
type Defaults struct {
	Language1 string `yaml:"language1,omitempty"`
	Language2 string `yaml:"language2,omitempty"`
	Voice1    string `yaml:"voice1,omitempty"`
	Voice2    string `yaml:"voice2,omitempty"`
}

// Export configures where transcript exports are written.
type Export struct {
	// Backend is "local" or "s3".
	Backend string `yaml:"backend,omitempty"`

	// Dir is the root directory for the local backend.
	Dir string `yaml:"dir,omitempty"`

	// Bucket, Prefix and Region configure the s3 backend.
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
	Region string `yaml:"region,omitempty"`
}

// Config is the orbit CLI configuration.
type Config struct {
	// Dir is the root configuration directory. Not serialized.
	Dir string `yaml:"-"`

	// APIKey authenticates against the Gemini API. The GEMINI_API_KEY
	// environment variable takes precedence when set.
	APIKey string `yaml:"api_key,omitempty"`

	// Model overrides the default live model.
	Model string `yaml:"model,omitempty"`

	Defaults Defaults `yaml:"defaults,omitempty"`
	Export   Export   `yaml:"export,omitempty"`
}

// Load loads the configuration from the default location, or from
// $ORBIT_CONFIG_DIR when set. A missing config file is not an error;
// defaults apply.
func Load() (*Config, error) {
	if dir := os.Getenv("ORBIT_CONFIG_DIR"); dir != "" {
		return LoadFrom(dir)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return LoadFrom(filepath.Join(base, appDir))
}

// LoadFrom loads the configuration from a specific root directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{Dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	cfg.Dir = dir
	return cfg, nil
}

// Save writes the configuration back to its root directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	path := filepath.Join(c.Dir, configFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, configFile)
}

// DataDir returns the directory for the history archive database.
func (c *Config) DataDir() string {
	return filepath.Join(c.Dir, dataDir)
}

// ResolveAPIKey returns the API key, preferring the environment.
func (c *Config) ResolveAPIKey() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	return "", fmt.Errorf("no API key: set GEMINI_API_KEY or run 'orbit config set api_key <key>'")
}

// SessionConfig builds the initial session configuration from the
// configured defaults, filling gaps with the catalog defaults.
func (c *Config) SessionConfig() session.Config {
	cfg := session.Config{
		Language1: c.Defaults.Language1,
		Language2: c.Defaults.Language2,
		Voice1:    c.Defaults.Voice1,
		Voice2:    c.Defaults.Voice2,
		Model:     c.Model,
	}
	if cfg.Language1 == "" {
		cfg.Language1 = prompt.DefaultLanguage1
	}
	if cfg.Language2 == "" {
		cfg.Language2 = prompt.DefaultLanguage2
	}
	if cfg.Voice1 == "" {
		cfg.Voice1 = prompt.DefaultVoice1
	}
	if cfg.Voice2 == "" {
		cfg.Voice2 = prompt.DefaultVoice2
	}
	if cfg.Model == "" {
		cfg.Model = session.DefaultModel
	}
	return cfg
}
