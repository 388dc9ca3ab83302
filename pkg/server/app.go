package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StratGen/pkg/config"
	xhttp "StratGen/pkg/http"
	applogger "StratGen/pkg/logger"
)

// Closer is any resource the app must release on shutdown.
type Closer interface {
	Close() error
}

// App encapsulates the application lifecycle: HTTP server plus the
// resources that must be closed after it stops.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	logger     *applogger.Logger
	httpServer *xhttp.Server
	closers    []Closer
}

// New creates an App. closers are released in order after the HTTP
// server drains; nil entries are skipped.
func New(cfg *config.Config, handler xhttp.Handler, logger *applogger.Logger, closers ...Closer) *App {
	return &App{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		closers: closers,
	}
}

// Run starts the HTTP server and blocks until an interrupt arrives, then
// shuts everything down gracefully.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	}
	if a.cfg.Metrics.Enabled {
		path := a.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		opts = append(opts, xhttp.WithMetricsPath(path))
	}
	if a.cfg.Server.StaticDir != "" {
		opts = append(opts, xhttp.WithStaticDir(a.cfg.Server.StaticDir))
	}

	a.httpServer = xhttp.NewServer(a.handler, opts...)
	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.logger.Info("service started",
		applogger.String("environment", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("advisor", a.cfg.Advisor.Type),
		applogger.String("audit_backend", a.cfg.Audit.Backend),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	for _, c := range a.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			a.logger.Warn("resource close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
