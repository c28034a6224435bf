package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/dateq/internal/logging"
	mcpadapter "github.com/aretw0/dateq/pkg/adapters/mcp"
)

// ExecuteMCP starts the MCP server on the chosen transport.
func ExecuteMCP(opts RunOptions, transport string, port int) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	// Stdout carries JSON-RPC, so all logging goes to Stderr.
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)
	slog.SetDefault(logger)

	engine, err := createEngine(opts, cfg, logger)
	if err != nil {
		return err
	}

	srv := mcpadapter.NewServer(engine)

	switch transport {
	case "stdio":
		log.SetOutput(os.Stderr)
		slog.Info("Starting dateq MCP Server (Stdio)...")
		return srv.ServeStdio()

	case "sse":
		slog.Info("Starting dateq MCP Server (SSE)", "port", port)

		sigCtx := NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		if err := srv.ServeSSE(sigCtx, port); err != nil && err != http.ErrServerClosed {
			return err
		}
		slog.Info("MCP Server stopped gracefully")
		return nil
	}

	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
}
