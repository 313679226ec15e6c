// Package server wires the reference backend together: configuration,
// storage, the entries service and the HTTP server, with graceful shutdown
// on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/kbadmin/internal/logging"
	"github.com/dmitrijs2005/kbadmin/internal/server/config"
	"github.com/dmitrijs2005/kbadmin/internal/server/entries"
	"github.com/dmitrijs2005/kbadmin/internal/server/httpserver"
	"github.com/dmitrijs2005/kbadmin/internal/server/repositories/repomanager"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	http   *httpserver.Server
}

// NewApp opens storage and applies migrations. The caller must Close the
// App.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONSlogLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, err
	}

	svc := entries.NewService(rm, logger)

	opts := []httpserver.Option{httpserver.WithShutdownTimeout(c.ShutdownTimeout)}
	if c.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, httpserver.WithMetrics(reg))
	}

	return &App{
		config: c,
		logger: logger,
		repos:  rm,
		http:   httpserver.New(c.EndpointAddr, svc, logger, opts...),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage, "addr", app.config.EndpointAddr)
	app.initSignalHandler(ctx, cancelFunc)

	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) Close() error {
	return app.repos.Close()
}
