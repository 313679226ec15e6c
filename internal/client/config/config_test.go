package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/flagx"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func newLoader(t *testing.T, env map[string]string, args ...string) *Loader {
	t.Helper()
	fs := pflag.NewFlagSet("kbconsole", pflag.ContinueOnError)
	l := BindFlags(fs)
	l.getenv = func(k string) string { return env[k] }
	require.NoError(t, fs.Parse(args))
	return l
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()
	assert.Equal(t, "http://localhost:3001", c.APIBaseURL)
	assert.Equal(t, "table", c.OutputFormat)
	assert.Equal(t, "kbconsole.log", c.LogFile)
	assert.Equal(t, []string{"Auto-Mobiles", "Lathe"}, c.Categories)
	assert.Zero(t, c.RequestTimeout)
	assert.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := newLoader(t, nil).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "http://from-file:1",
		"request_timeout": "5s",
		"output_format":   "yaml",
		"categories":      []string{"Welding"},
	})

	t.Run("file", func(t *testing.T) {
		cfg, err := newLoader(t, nil, "--config", path).Load()
		require.NoError(t, err)

		want := defaults()
		want.APIBaseURL = "http://from-file:1"
		want.RequestTimeout = 5 * time.Second
		want.OutputFormat = "yaml"
		want.Categories = []string{"Welding"}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Fatalf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("file from env", func(t *testing.T) {
		cfg, err := newLoader(t, map[string]string{flagx.ConfigFileEnv: path}).Load()
		require.NoError(t, err)
		assert.Equal(t, "http://from-file:1", cfg.APIBaseURL)
	})

	t.Run("env beats file", func(t *testing.T) {
		cfg, err := newLoader(t, map[string]string{EnvAPIURL: "http://from-env:2"}, "-c", path).Load()
		require.NoError(t, err)
		assert.Equal(t, "http://from-env:2", cfg.APIBaseURL)
		assert.Equal(t, "yaml", cfg.OutputFormat)
	})

	t.Run("flags beat env", func(t *testing.T) {
		cfg, err := newLoader(t,
			map[string]string{EnvAPIURL: "http://from-env:2"},
			"-c", path, "-a", "http://from-flag:3", "-o", "json", "--timeout", "1s", "--log-level", "debug", "--log-file", "x.log",
		).Load()
		require.NoError(t, err)
		assert.Equal(t, "http://from-flag:3", cfg.APIBaseURL)
		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Equal(t, time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "x.log", cfg.LogFile)
	})
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	_, err := newLoader(t, nil, "-c", bad).Load()
	assert.ErrorContains(t, err, "parse config")

	_, err = newLoader(t, nil, "-c", filepath.Join(t.TempDir(), "missing.json")).Load()
	assert.ErrorContains(t, err, "read config")

	_, err = newLoader(t, nil, "-o", "xml").Load()
	assert.ErrorContains(t, err, "unknown output format")

	_, err = newLoader(t, nil, "--log-level", "chatty").Load()
	assert.Error(t, err)
}

func TestParseJson_NanosecondTimeout(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"request_timeout": 2000000000})
	cfg := defaults()
	require.NoError(t, parseJson(cfg, path))
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
}
