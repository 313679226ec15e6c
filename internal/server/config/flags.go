package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/kbadmin/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (e.g. ":3001")
//	-s string   storage backend: sqlite, postgres, memory
//	-d string   database DSN
//	-l string   log level
//	-m bool     expose /metrics
//
// Args are filtered with flagx.FilterArgs first so -c / -config can share
// the same argument list.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-l", "-m"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.Storage, "s", config.Storage, "storage backend: sqlite, postgres or memory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.Metrics, "m", config.Metrics, "expose Prometheus metrics")

	return fs.Parse(args)
}
