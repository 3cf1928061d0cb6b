package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/culturegraph/reconcile/internal/config"
	"github.com/culturegraph/reconcile/internal/domain/match"
	logpkg "github.com/culturegraph/reconcile/internal/logger"
	"github.com/culturegraph/reconcile/internal/metrics"
	chiTransport "github.com/culturegraph/reconcile/internal/transport/chi"
	healthuc "github.com/culturegraph/reconcile/internal/usecase/health"
	reconcileuc "github.com/culturegraph/reconcile/internal/usecase/reconcile"
	suggestuc "github.com/culturegraph/reconcile/internal/usecase/suggest"
	"github.com/culturegraph/reconcile/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reconciliation HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting reconciliation server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("database_path", cfg.Storage.DatabasePath),
	)

	repo, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer repo.Close()

	// Ingest the CSV exports on first run against an empty database.
	empty, err := repo.Empty()
	if err != nil {
		logger.Fatal("Failed to inspect record store", zap.Error(err))
	}
	if empty {
		logger.Info("Record store is empty, ingesting CSV sources")
		if err := ingestDataset(logger, cfg.Storage, repo); err != nil {
			logger.Fatal("Ingest failed", zap.Error(err))
		}
	}

	if err := repo.Load(); err != nil {
		logger.Fatal("Failed to load records", zap.Error(err))
	}
	counts, err := repo.Stats(context.Background())
	if err != nil {
		logger.Fatal("Failed to count records", zap.Error(err))
	}
	logger.Info("Dataset loaded",
		zap.Int("museums", counts.Museums),
		zap.Int("artists", counts.Artists),
		zap.Int("artifacts", counts.Artifacts),
	)

	// Register reconciliation metrics explicitly (no init())
	metrics.RegisterReconcileMetrics()

	// Create use case services
	matchSvc := reconcileuc.New(repo, logger).
		WithThresholds(match.Thresholds{
			Fuzzy:     cfg.Matching.FuzzyThreshold,
			Confident: cfg.Matching.ConfidentThreshold,
		}).
		WithLimits(cfg.Matching.DefaultLimit, cfg.Matching.MaxLimit).
		WithWorkers(cfg.Matching.Workers)
	suggestSvc := suggestuc.New(matchSvc)
	healthSvc := healthuc.New(repo)

	// Create chi server
	server := chiTransport.NewServer(matchSvc, suggestSvc, repo, healthSvc, cfg.Service, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	// OpenRefine runs in the browser, so the API must answer cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
