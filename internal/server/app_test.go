package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/kbadmin/internal/server/config"
)

func TestNewApp_RunAndStop(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = config.StorageMemory
	cfg.EndpointAddr = "127.0.0.1:0"
	cfg.LogLevel = "error"
	cfg.ShutdownTimeout = time.Second

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, app.Run(ctx))
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = config.StorageMemory
	cfg.LogLevel = "loud"

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}
