// Package config loads the draftflow CLI configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

var (
	// ErrUnknownBackend is returned by Validate for an unsupported
	// store.backend.
	ErrUnknownBackend = errors.New("config: unknown store backend")

	// ErrInvalid wraps every other validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend     string `yaml:"backend"`
	SQLitePath  string `yaml:"sqlite_path,omitempty"`
	PostgresDSN string `yaml:"postgres_dsn,omitempty"`
	RedisAddr   string `yaml:"redis_addr,omitempty"`
	RedisPrefix string `yaml:"redis_prefix,omitempty"`
	MongoURI    string `yaml:"mongo_uri,omitempty"`
	MongoDB     string `yaml:"mongo_database,omitempty"`
}

// AutosaveConfig configures the draft autosave engine.
type AutosaveConfig struct {
	Key      string        `yaml:"key"`
	Interval time.Duration `yaml:"interval"`
	Enabled  bool          `yaml:"enabled"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models draftflow.yaml.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no file is present: a SQLite
// file in the working directory, 30 second autosave and text logs at info.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend:    BackendSQLite,
			SQLitePath: "draftflow.db",
		},
		Autosave: AutosaveConfig{
			Key:      "content_draft",
			Interval: 30 * time.Second,
			Enabled:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))

	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("%w: store.sqlite_path is required", ErrInvalid)
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("%w: store.postgres_dsn is required", ErrInvalid)
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("%w: store.redis_addr is required", ErrInvalid)
		}
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("%w: store.mongo_uri is required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}

	if c.Autosave.Key == "" {
		return fmt.Errorf("%w: autosave.key is required", ErrInvalid)
	}
	if c.Autosave.Interval < 0 {
		return fmt.Errorf("%w: autosave.interval must not be negative", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return lvl, nil
}
