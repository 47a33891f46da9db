// Package config owns the persisted keybind configuration. One file is
// written during first-run setup and read at every later launch; the binding
// and credential are immutable for the lifetime of a run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Deployment targets, selected by the local_instance flag.
const (
	DefaultLocalURL    = "http://192.168.1.10:28808"
	DefaultExternalURL = "https://whisper.ggkserver.com"
)

type Config struct {
	Keybind       string `yaml:"keybind"`
	AuthToken     string `yaml:"auth_token"`
	LocalInstance bool   `yaml:"local_instance"`

	Debounce     time.Duration `yaml:"debounce"`
	PollInterval time.Duration `yaml:"poll_interval"`

	// FeedAddr enables the local status feed when set, e.g. "127.0.0.1:28811".
	FeedAddr string `yaml:"feed_addr"`

	LocalURL    string `yaml:"local_url"`
	ExternalURL string `yaml:"external_url"`
}

// Default returns a config with every tunable at its default and no binding.
func Default() *Config {
	return &Config{
		Debounce:     350 * time.Millisecond,
		PollInterval: 15 * time.Second,
		LocalURL:     DefaultLocalURL,
		ExternalURL:  DefaultExternalURL,
	}
}

// DefaultPath is the per-user config location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "388-client", "config.yaml"), nil
}

// Load reads the config at path over the defaults. A missing file is
// reported via os.IsNotExist on the error; the caller treats that as
// first-run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config, creating the directory as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// HasBinding reports whether first-run setup has completed.
func (c *Config) HasBinding() bool {
	return c.Keybind != "" && c.AuthToken != ""
}

// BaseURL resolves the deployment target endpoint.
func (c *Config) BaseURL() string {
	if c.LocalInstance {
		if c.LocalURL != "" {
			return c.LocalURL
		}
		return DefaultLocalURL
	}
	if c.ExternalURL != "" {
		return c.ExternalURL
	}
	return DefaultExternalURL
}
