// main is the entry point of the professores API.
//
// Startup sequence:
//  1. Load configuration from a YAML file (plus .env and env overrides)
//  2. Initialise the logger
//  3. Open the configured database and create the table if needed
//  4. Register the HTTP routes and middleware
//  5. Serve in a separate goroutine
//  6. Block until SIGINT/SIGTERM, then shut down gracefully
//
// Running the server:
//
//	go run ./cmd/professores-api --config=config/local.yaml
//
// or
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/professores-api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/aanand-mishra/professores-api/internal/config"
	"github.com/aanand-mishra/professores-api/internal/http/handlers/health"
	"github.com/aanand-mishra/professores-api/internal/http/handlers/teacher"
	"github.com/aanand-mishra/professores-api/internal/http/middleware"
	"github.com/aanand-mishra/professores-api/internal/logger"
	"github.com/aanand-mishra/professores-api/internal/storage"
	"github.com/aanand-mishra/professores-api/internal/storage/postgres"
	"github.com/aanand-mishra/professores-api/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Log

	log.WithFields(logrus.Fields{
		"env":     cfg.Env,
		"version": "1.0.0",
	}).Info("starting professores-api")

	store, err := openStorage(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise storage")
	}
	defer store.Close()

	log.WithField("driver", cfg.Storage.Driver).Info("storage initialised")

	router := http.NewServeMux()
	router.HandleFunc("GET /health", health.Check(store))
	teacher.RegisterRoutes(router, store)

	server := &http.Server{
		Addr: cfg.HTTPServer.Addr,
		Handler: middleware.Chain(router,
			middleware.Recover,
			middleware.Logger,
			middleware.Timeout(cfg.HTTPServer.RequestTimeout),
		),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.WithField("address", cfg.HTTPServer.Addr).Info("server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server encountered an error")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("failed to shutdown server gracefully")
		return
	}

	log.Info("server stopped gracefully")
}

// openStorage picks the backend named by cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return sqlite.New(cfg)
	case "postgres":
		return postgres.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
