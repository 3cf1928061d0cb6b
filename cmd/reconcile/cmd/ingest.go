package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/culturegraph/reconcile/internal/config"
	"github.com/culturegraph/reconcile/internal/domain/record"
	"github.com/culturegraph/reconcile/internal/ingest"
	logpkg "github.com/culturegraph/reconcile/internal/logger"
	"github.com/culturegraph/reconcile/internal/repository/records"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the record database from the configured CSV sources",
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	repo, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer repo.Close()

	if err := ingestDataset(logger, cfg.Storage, repo); err != nil {
		return err
	}
	if err := repo.Load(); err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	counts, err := repo.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	logger.Info("Ingest complete",
		zap.Int("museums", counts.Museums),
		zap.Int("artists", counts.Artists),
		zap.Int("artifacts", counts.Artifacts),
	)
	return nil
}

// openStore creates the database directory if needed and opens the store.
func openStore(cfg config.StorageConfig) (*records.Repo, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return records.Open(cfg.DatabasePath)
}

// ingestDataset loads the configured CSV exports and rebuilds the store.
// A missing source file yields an empty dataset for its category so the
// service can run with partial data.
func ingestDataset(logger *zap.Logger, cfg config.StorageConfig, repo *records.Repo) error {
	museums, err := loadOrEmpty(logger, cfg.MuseumsCSV, ingest.LoadMuseums)
	if err != nil {
		return err
	}
	artists, err := loadOrEmpty(logger, cfg.ArtistsCSV, ingest.LoadArtists)
	if err != nil {
		return err
	}
	artifacts, err := loadOrEmpty(logger, cfg.ArtifactsCSV, ingest.LoadArtifacts)
	if err != nil {
		return err
	}

	if err := repo.Rebuild(museums, artists, artifacts); err != nil {
		return fmt.Errorf("rebuild record store: %w", err)
	}
	return nil
}

func loadOrEmpty[T record.Record](logger *zap.Logger, path string, load func(string) ([]T, error)) ([]T, error) {
	if path == "" {
		return nil, nil
	}
	recs, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("CSV source not found, using empty dataset", zap.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Info("Loaded CSV source", zap.String("path", path), zap.Int("records", len(recs)))
	return recs, nil
}
