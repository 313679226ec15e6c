// Package config handles configuration for the reference backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Storage backends.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds runtime settings for the backend.
//
// Fields:
//   - EndpointAddr: bind address of the REST API.
//   - Storage: sqlite, postgres or memory.
//   - DatabaseDSN: file name for sqlite, connection string for postgres.
//   - LogLevel: slog level name.
//   - Metrics: expose Prometheus metrics on /metrics.
//   - ShutdownTimeout: how long in-flight requests get on shutdown.
type Config struct {
	EndpointAddr    string
	Storage         string
	DatabaseDSN     string
	LogLevel        string
	Metrics         bool
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3001"
	c.Storage = StorageSQLite
	c.DatabaseDSN = "kb.db"
	c.LogLevel = "info"
	c.Metrics = true
	c.ShutdownTimeout = 10 * time.Second
}

// Validate rejects unknown storage backends.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StoragePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("storage %s needs a database dsn", c.Storage)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q, want sqlite, postgres or memory", c.Storage)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. args are
// the program arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
