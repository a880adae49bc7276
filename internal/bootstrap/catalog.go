package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hearthvale/craftforge/internal/catalog"
)

// CatalogSeedPath returns the seed file location, honoring the
// CATALOG_SEED_PATH override.
func CatalogSeedPath() string {
	if path := os.Getenv("CATALOG_SEED_PATH"); path != "" {
		return path
	}
	return DefaultCatalogSeedPath
}

// SyncCatalog loads, validates, and syncs the authored catalog seed to
// the database. It handles the complete lifecycle: load JSON, validate,
// sync to DB, log results. Hash-based change detection skips the sync
// when the seed file is unchanged.
func SyncCatalog(ctx context.Context, path string, store catalog.SeedStore) error {
	slog.Info(LogMsgSyncingCatalog, "path", path)
	loader := catalog.NewLoader()

	cfg, hash, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog seed: %w", err)
	}

	if err := loader.Validate(cfg); err != nil {
		return fmt.Errorf("invalid catalog seed: %w", err)
	}

	result, err := loader.SyncToDatabase(ctx, cfg, hash, store)
	if err != nil {
		return fmt.Errorf("failed to sync catalog to database: %w", err)
	}

	if result.Skipped {
		slog.Info(LogMsgCatalogSkipped)
		return nil
	}

	slog.Info(LogMsgCatalogSynced,
		"materials", result.MaterialsSynced,
		"items", result.ItemsSynced,
		"recipes", result.RecipesSynced)
	return nil
}
