// ABOUTME: Configuration for the Charm KV storage backend
// ABOUTME: JSON settings file under the XDG data dir with defaults on missing or bad input

package charm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName names the charm KV database and the XDG data directory.
	AppName = "lifehub"

	// ConfigFileName is where we store local config.
	ConfigFileName = "charm-config.json"
)

// Config holds charm connection settings.
type Config struct {
	// Host is the charm server hostname (default: charm.2389.dev)
	Host string `json:"host,omitempty"`

	// AutoSync enables automatic sync after every write operation
	AutoSync bool `json:"auto_sync"`

	// StaleThreshold is the duration before data is considered stale and needs a sync
	StaleThreshold time.Duration `json:"stale_threshold,omitempty"`

	path string
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultCharmHost,
		AutoSync:       true,
		StaleThreshold: kv.DefaultStaleThreshold,
	}
}

// DataDir is the per-user data directory shared by every storage backend.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// LoadConfig loads config from the XDG data dir.
func LoadConfig() (*Config, error) {
	dir := DataDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		// Can't create the data dir, use defaults
		return DefaultConfig(), nil //nolint:nilerr // Intentionally returning defaults on path error
	}
	return LoadConfigFrom(filepath.Join(dir, ConfigFileName))
}

// LoadConfigFrom loads config from path, or returns defaults if it is missing
// or unreadable as JSON. Save writes back to the same path.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.path = path
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		def := DefaultConfig()
		def.path = path
		return def, nil //nolint:nilerr // Intentionally returning defaults on parse error
	}

	if cfg.Host == "" {
		cfg.Host = DefaultCharmHost
	}
	if cfg.StaleThreshold == 0 {
		cfg.StaleThreshold = kv.DefaultStaleThreshold
	}
	cfg.path = path

	return &cfg, nil
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = filepath.Join(DataDir(), ConfigFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// SetHost sets the charm server host and saves.
func (c *Config) SetHost(host string) error {
	c.Host = host
	return c.Save()
}

// SetAutoSync enables or disables auto-sync and saves.
func (c *Config) SetAutoSync(enabled bool) error {
	c.AutoSync = enabled
	return c.Save()
}
