package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/userdir/internal/config"
	"github.com/JonMunkholm/userdir/internal/core"
	"github.com/JonMunkholm/userdir/internal/logging"
	"github.com/JonMunkholm/userdir/internal/refdata"
	"github.com/JonMunkholm/userdir/internal/storage"
	"github.com/JonMunkholm/userdir/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires the server and blocks until it stops.
func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Setup structured logging based on config
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"storage_backend", cfg.Storage.Backend,
		"editable_users", cfg.Features.EditableUsers,
		"deletable_users", cfg.Features.DeletableUsers,
	)
	slog.Debug("configuration detail", "config", cfg.String())

	// Open the durable key-value store
	ctx := context.Background()
	kv, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.Storage.Backend,
		Dir:         cfg.Storage.Dir,
		DatabaseURL: cfg.Storage.DatabaseURL,
		Table:       cfg.Storage.Table,
	})
	if err != nil {
		if core.IsUserFacing(err) {
			slog.Warn(core.FormatUserError(err), "backend", cfg.Storage.Backend)
		}
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("closing storage", "error", err)
		}
	}()

	ref := refdata.NewStatic()
	validator, err := core.NewValidator(cfg.Validation, cfg.Messages, ref)
	if err != nil {
		return fmt.Errorf("build validator: %w", err)
	}

	store := core.NewStore(kv, logger)
	server := web.NewServer(cfg, store, validator, ref)

	// Hydrate after the server exists so the table controller sees the load
	store.Load(ctx)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	<-done
	return nil
}
