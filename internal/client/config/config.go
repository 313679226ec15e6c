package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/client/client"
	"github.com/dmitrijs2005/kbadmin/internal/client/forms"
	"github.com/dmitrijs2005/kbadmin/internal/client/output"
	"github.com/dmitrijs2005/kbadmin/internal/logging"
)

// EnvAPIURL overrides the API base URL from the environment.
const EnvAPIURL = "KB_API_URL"

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	OutputFormat   string
	LogFile        string
	LogLevel       string
	Categories     []string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = client.DefaultBaseURL
	c.RequestTimeout = 0
	c.OutputFormat = output.FormatTable
	c.LogFile = "kbconsole.log"
	c.LogLevel = "info"
	c.Categories = slices.Clone(forms.DefaultCategories)
}

// Validate rejects values the console cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api base url must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if _, err := output.NewFormatter(c.OutputFormat); err != nil {
		return err
	}
	if _, err := logging.ParseSlogLevel(c.LogLevel); err != nil {
		return err
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	return nil
}
