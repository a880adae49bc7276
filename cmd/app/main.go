package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hearthvale/craftforge/internal/bootstrap"
	"github.com/hearthvale/craftforge/internal/catalog"
	"github.com/hearthvale/craftforge/internal/concurrency"
	"github.com/hearthvale/craftforge/internal/config"
	"github.com/hearthvale/craftforge/internal/crafting"
	"github.com/hearthvale/craftforge/internal/database"
	"github.com/hearthvale/craftforge/internal/database/postgres"
	"github.com/hearthvale/craftforge/internal/event"
	"github.com/hearthvale/craftforge/internal/handler"
	"github.com/hearthvale/craftforge/internal/server"
)

const shutdownTimeout = 30 * time.Second

// @title CraftForge API
// @version 1.0
// @description Crafting engine service: per-character crafting sessions, recipe catalogs, professions, and inventory.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(
		cfg.GetDBConnString(),
		database.DefaultMaxConnections,
		database.DefaultMaxIdleTime,
		database.DefaultMaxLifetime,
	)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}

	craftingRepo := postgres.NewCraftingRepository(dbPool)

	ctx := context.Background()
	if err := bootstrap.SyncCatalog(ctx, bootstrap.CatalogSeedPath(), craftingRepo); err != nil {
		slog.Error("Catalog sync failed", "error", err)
		os.Exit(1)
	}

	// Catalog reads are hot on every craft request; serve them from
	// an in-memory cache in front of the repository.
	store := catalog.WrapRepository(craftingRepo, catalog.DefaultCacheSize, catalog.DefaultCacheTTL)

	eventBus := event.NewBus()
	bootstrap.RegisterEventHandlers(eventBus)

	locks := concurrency.NewLockManager()
	craftingService := crafting.NewService(store, locks, eventBus)

	handler.InitValidator()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, craftingService)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		DBPool: dbPool,
	})
}
