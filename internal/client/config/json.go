package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields distinguish "absent" from
// zero so a file can set only some keys.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	OutputFormat   *string         `json:"output_format"`
	LogFile        *string         `json:"log_file"`
	LogLevel       *string         `json:"log_level"`
	Categories     []string        `json:"categories"`
}

// parseJson overlays cfg with the keys present in the file at path.
func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OutputFormat != nil {
		cfg.OutputFormat = *jc.OutputFormat
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if len(jc.Categories) > 0 {
		cfg.Categories = jc.Categories
	}
	return nil
}
