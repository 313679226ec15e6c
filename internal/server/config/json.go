package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/flagx"
	"github.com/dmitrijs2005/kbadmin/internal/timex"
)

// JsonConfig is the on-disk shape. Absent keys keep their current value.
type JsonConfig struct {
	EndpointAddr    *string         `json:"endpoint_addr"`
	Storage         *string         `json:"storage"`
	DatabaseDSN     *string         `json:"database_dsn"`
	LogLevel        *string         `json:"log_level"`
	Metrics         *bool           `json:"metrics"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays config with the file named by -c / -config in args or
// by $KB_CONFIG. Nothing is loaded when neither is set.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.Storage != nil {
		config.Storage = *c.Storage
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.Metrics != nil {
		config.Metrics = *c.Metrics
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	}
	return nil
}
