// Package httpserver exposes the knowledge entries over REST with echo.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/kbadmin/internal/common"
	"github.com/dmitrijs2005/kbadmin/internal/logging"
	"github.com/dmitrijs2005/kbadmin/internal/server/models"
)

// EntryService is what the handlers need from the entries use cases.
type EntryService interface {
	List(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id string) (*models.Entry, error)
	Create(ctx context.Context, e *models.Entry) (*models.Entry, error)
	Update(ctx context.Context, id string, p *models.EntryPatch) (*models.Entry, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	echo            *echo.Echo
	addr            string
	log             logging.Logger
	shutdownTimeout time.Duration
}

type Option func(*Server)

// WithMetrics registers the request metrics on reg and serves them on
// /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.echo.Use(newMetrics(reg).middleware)
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New builds the server and its routes. Nothing listens until Run.
func New(addr string, svc EntryService, log logging.Logger, opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, addr: addr, log: logging.OrNop(log), shutdownTimeout: 10 * time.Second}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: common.RequestIDHeaderName,
	}))
	e.Use(middleware.Recover())
	for _, opt := range opts {
		opt(s)
	}
	e.Use(requestLogger(s.log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h := &handlers{svc: svc}
	g := e.Group("/" + common.EntriesResource)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)

	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info(ctx, "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
