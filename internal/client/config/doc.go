// Package config loads runtime configuration for the knowledge-base console.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by --config/-c, or by $KB_CONFIG.
//  3. Environment: $KB_API_URL.
//  4. Command-line flags that were set explicitly.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:3001",
//	  "request_timeout": "10s",
//	  "output_format": "table",
//	  "log_file": "kbconsole.log",
//	  "log_level": "info",
//	  "categories": ["Auto-Mobiles", "Lathe"]
//	}
//
// request_timeout accepts a duration string or integer nanoseconds; zero
// disables the timeout.
package config
