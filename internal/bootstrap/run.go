package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/iris/config"
)

const defaultShutdownTimeout = 10 * time.Second

// RunConfig contains dependencies for running the API until shutdown.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until ctx is cancelled,
// SIGINT or SIGTERM is received, or the server fails.
func RunWithShutdown(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config with AppConfig is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	}, errCh)

	return waitForShutdown(shutdownConfig{
		ctx:        sigCtx,
		errCh:      errCh,
		httpServer: server,
		timeout:    cfg.Config.HTTP.ShutdownTimeout,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	errCh      <-chan error
	httpServer *http.Server
	timeout    time.Duration
	logger     *slog.Logger
}

// waitForShutdown waits for cancellation or a server error, then stops the server.
func waitForShutdown(cfg shutdownConfig) error {
	select {
	case <-cfg.ctx.Done():
		cfg.logger.Info("shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func gracefulStop(cfg shutdownConfig) error {
	timeout := cfg.timeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	// The parent context is already done on signal, so shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cfg.ctx), timeout)
	defer cancel()

	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
}
