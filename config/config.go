// ABOUTME: Layered configuration for the lifehub CLI and servers
// ABOUTME: Defaults, then YAML under the XDG config dir, then .env and environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const AppName = "lifehub"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Config is read-only after Load returns.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	AI         AIConfig         `yaml:"ai"`
	Auth       AuthConfig       `yaml:"auth"`
	Web        WebConfig        `yaml:"web"`
	Connectors ConnectorsConfig `yaml:"connectors"`
	Log        LogConfig        `yaml:"log"`

	// Path is the file the config was read from, empty when none existed.
	Path string `yaml:"-"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type AIConfig struct {
	APIKey    string   `yaml:"-"` // env-only
	Model     string   `yaml:"model"`
	ChatModel string   `yaml:"chat_model"`
	Timeout   Duration `yaml:"timeout"`
}

type AuthConfig struct {
	Passcode string `yaml:"passcode"`
}

type WebConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type ConnectorsConfig struct {
	SyncLatency Duration `yaml:"sync_latency"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Duration is a time.Duration that reads and writes YAML strings like "90s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DataDir is where local databases live.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultPath is the config file consulted when LIFEHUB_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Defaults returns a Config with every default applied.
func Defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(DataDir(), "lifehub.db"),
		},
		AI: AIConfig{
			Model:     "gemini-3-flash-preview",
			ChatModel: "gemini-3-pro-preview",
		},
		Web: WebConfig{
			Addr:            "127.0.0.1:8420",
			ReadTimeout:     Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Connectors: ConnectorsConfig{
			SyncLatency: Duration(2 * time.Second),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration with precedence defaults, YAML file, environment.
// An empty path means LIFEHUB_CONFIG or DefaultPath. A missing file is not an
// error. A .env file in the working directory is loaded first and never
// overrides variables already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = getEnv("LIFEHUB_CONFIG", DefaultPath())
	}
	cfg := Defaults()
	if err := loadYAMLFile(cfg, path); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.Path = path
	return nil
}

// applyEnvOverrides lets non-empty variables win over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFEHUB_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("LIFEHUB_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("LIFEHUB_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("LIFEHUB_AI_CHAT_MODEL"); v != "" {
		cfg.AI.ChatModel = v
	}
	if v := os.Getenv("LIFEHUB_AI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AI.Timeout = Duration(d)
		}
	}

	if v := os.Getenv("HUB_PASSCODE"); v != "" {
		cfg.Auth.Passcode = v
	}

	if v := os.Getenv("LIFEHUB_WEB_ADDR"); v != "" {
		cfg.Web.Addr = v
	}
	if v := os.Getenv("LIFEHUB_SYNC_LATENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Connectors.SyncLatency = Duration(d)
		}
	}
	if v := os.Getenv("LIFEHUB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendCharm, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite, charm or memory)", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path is required for the sqlite backend")
	}
	if c.AI.Timeout < 0 {
		return errors.New("ai.timeout must not be negative")
	}
	return nil
}

// Save writes cfg as YAML to path, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
