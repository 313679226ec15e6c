package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/flagx"
	"github.com/spf13/pflag"
)

// Loader binds the configuration flags to a flag set and builds the Config
// once the flags are parsed.
type Loader struct {
	fs *pflag.FlagSet

	configPath string
	api        string
	output     string
	logFile    string
	logLevel   string
	timeout    time.Duration

	getenv func(string) string
}

// BindFlags registers the console flags on fs (usually cobra's persistent
// flag set).
func BindFlags(fs *pflag.FlagSet) *Loader {
	l := &Loader{fs: fs, getenv: os.Getenv}
	fs.StringVarP(&l.configPath, "config", "c", "", "path to a JSON config file (env "+flagx.ConfigFileEnv+")")
	fs.StringVarP(&l.api, "api", "a", "", "REST API base URL (env "+EnvAPIURL+")")
	fs.StringVarP(&l.output, "output", "o", "", "output format: table, json, yaml")
	fs.DurationVar(&l.timeout, "timeout", 0, "request timeout, 0 disables")
	fs.StringVar(&l.logFile, "log-file", "", "log file path")
	fs.StringVar(&l.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return l
}

// Load applies defaults, the JSON file, the environment and the explicitly
// set flags, in that order, and validates the result.
func (l *Loader) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path := l.configPath
	if path == "" {
		path = l.getenv(flagx.ConfigFileEnv)
	}
	if path != "" {
		if err := parseJson(cfg, path); err != nil {
			return nil, err
		}
	}

	if v := l.getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}

	if l.fs.Changed("api") {
		cfg.APIBaseURL = l.api
	}
	if l.fs.Changed("output") {
		cfg.OutputFormat = l.output
	}
	if l.fs.Changed("timeout") {
		cfg.RequestTimeout = l.timeout
	}
	if l.fs.Changed("log-file") {
		cfg.LogFile = l.logFile
	}
	if l.fs.Changed("log-level") {
		cfg.LogLevel = l.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
