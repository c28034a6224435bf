package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/dateq"
	httpadapter "github.com/aretw0/dateq/internal/adapters/http"
	"github.com/aretw0/dateq/internal/logging"
	"github.com/aretw0/dateq/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server command.
type ServeOptions struct {
	RunOptions
	Addr string
}

// ExecuteServe runs the JSON API until a shutdown signal arrives or the
// listener fails.
func ExecuteServe(opts ServeOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	} else if cfg.LogLevel != "" {
		level, err = logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
	}
	logger := logging.New(level)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	engine, err := createEngine(opts.RunOptions, cfg, logger,
		dateq.WithLifecycleHooks(metrics.Hooks()))
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	handler := httpadapter.NewHandler(engine, logger,
		httpadapter.WithVersion(strings.TrimSpace(dateq.Version)),
		httpadapter.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Starting dateq server", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("Shutdown signal received", "signal", fmt.Sprint(sigCtx.Signal()))

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}
