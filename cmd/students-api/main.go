// main is the entry point of the Students API application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, YAML file, environment)
//  2. Initialise the logger
//  3. Open the configured datastore and migrate its schema
//  4. Build the router
//  5. Start the HTTP server in a separate goroutine
//  6. Block until SIGINT or SIGTERM arrives
//  7. Gracefully shut down: finish in-flight requests, then close storage
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/student-management-api/internal/config"
	"github.com/aanand-mishra/student-management-api/internal/http/router"
	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/storage"
	"github.com/aanand-mishra/student-management-api/internal/storage/postgres"
	"github.com/aanand-mishra/student-management-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := logger.New(cfg.Env)
	log.Info().
		Str("version", "1.0.0").
		Str("driver", cfg.Storage.Driver).
		Msg("starting students-api")

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Everything past this point only knows the storage.Storage interface.
	ctx := context.Background()

	store, err := openStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Err(err).Msg("failed to close storage")
		}
	}()

	log.Info().Msg("storage initialised")

	// ── 4. Build the Router ───────────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router.New(store, log, cfg.CORS),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe returns http.ErrServerClosed once Shutdown is called;
	// any other error ends the process through serverErr.
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.HTTPServer.Addr).Msg("server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-done:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received, stopping server...")
	case err := <-serverErr:
		log.Err(err).Msg("server encountered an error")
	}

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Msg("failed to shutdown server gracefully")
		return
	}

	log.Info().Msg("server stopped gracefully")
}

// openStorage returns the datastore selected by cfg.Driver.
func openStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg, log)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}
