package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/internal/config"
	httpAdapter "github.com/aretw0/flowant/pkg/adapters/http"
	"github.com/aretw0/flowant/pkg/adapters/mcp"
	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the serve and mcp commands.
type ServeOptions struct {
	ConfigPath string
	Overrides  Overrides
	Port       int
	// Transport selects the MCP transport: "stdio" or "sse".
	Transport string
	Debug     bool
	Stderr    io.Writer
}

func (o *ServeOptions) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// serverLogger logs at info level even without --debug: a server has no report to print.
func serverLogger(debug bool) *slog.Logger {
	if debug {
		return createLogger(true)
	}
	return createInfoLogger()
}

// RunServe starts the HTTP API until ctx is cancelled.
// Without a configured store, results are kept in memory.
func RunServe(ctx context.Context, opts ServeOptions) error {
	logger := serverLogger(opts.Debug)

	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	if cfg.Store.Kind == config.StoreNone {
		cfg.Store.Kind = config.StoreMemory
	}
	colonyCfg, err := cfg.Colony()
	if err != nil {
		return err
	}

	oracle, err := buildOracle(ctx, cfg.Fitness)
	if err != nil {
		return err
	}
	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close store", "err", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	optimizer, err := flowant.New(oracle,
		flowant.WithConfig(colonyCfg),
		flowant.WithLogger(logger),
		flowant.WithRegisterer(registry),
		flowant.WithStore(store),
	)
	if err != nil {
		return err
	}

	api := httpAdapter.NewServer(store,
		httpAdapter.WithOptimizer(optimizer),
		httpAdapter.WithGatherer(registry),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithBaseContext(ctx),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: api.Routes(),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Flowant Server", "address", srv.Addr, "fitness", cfg.Fitness.Kind, "store", cfg.Store.Kind)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		printSystemMessage(opts.stderr(), "Shutting down...")
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
		if err := srv.Close(); err != nil {
			logger.Error("Error killing server", "err", err)
		}
	}

	// Runs started in the background observe ctx and stop at the next iteration.
	api.Wait()
	logger.Info("Flowant Server stopped gracefully")
	return nil
}

// RunMCP starts the MCP server on the selected transport.
// Stdout belongs to JSON-RPC in stdio mode, so logs always go to Stderr.
func RunMCP(ctx context.Context, opts ServeOptions) error {
	logger := serverLogger(opts.Debug)

	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	colonyCfg, err := cfg.Colony()
	if err != nil {
		return err
	}

	serverOpts := []mcp.Option{
		mcp.WithConfig(colonyCfg),
		mcp.WithLogger(logger),
	}
	switch cfg.Store.Kind {
	case config.StoreNone:
		serverOpts = append(serverOpts, mcp.WithStore(memory.NewStore()))
	default:
		store, closeStore, err := buildStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("Failed to close store", "err", err)
			}
		}()
		serverOpts = append(serverOpts, mcp.WithStore(store))
	}

	srv := mcp.NewServer(serverOpts...)

	switch opts.Transport {
	case "stdio", "":
		logger.Info("Starting Flowant MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting Flowant MCP Server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
