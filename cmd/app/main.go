package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/AdventureBot_Go/internal/achievement"
	"github.com/osse101/AdventureBot_Go/internal/concurrency"
	"github.com/osse101/AdventureBot_Go/internal/config"
	"github.com/osse101/AdventureBot_Go/internal/database"
	"github.com/osse101/AdventureBot_Go/internal/database/postgres"
	"github.com/osse101/AdventureBot_Go/internal/event"
	"github.com/osse101/AdventureBot_Go/internal/inventory"
	"github.com/osse101/AdventureBot_Go/internal/loot"
	"github.com/osse101/AdventureBot_Go/internal/player"
	"github.com/osse101/AdventureBot_Go/internal/pricing"
	"github.com/osse101/AdventureBot_Go/internal/repository"
	"github.com/osse101/AdventureBot_Go/internal/server"
	"github.com/osse101/AdventureBot_Go/internal/trade"
)

const (
	dbMaxConns  = 10
	dbMaxIdle   = 5 * time.Minute
	dbMaxLife   = 30 * time.Minute
	stopTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx := context.Background()

	// Item catalog with behavior registries.
	cat, narrativeRegistry, err := loadContent(cfg.ItemsPath)
	if err != nil {
		slog.Error("Failed to load item catalog", "error", err, "path", cfg.ItemsPath)
		os.Exit(1)
	}
	slog.Info("Item catalog loaded", "items", cat.Len())

	// Player store.
	var store repository.Player
	var dbPool database.Pool
	if cfg.Store == "postgres" {
		pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := database.Migrate(ctx, pool); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}

		store = postgres.NewPlayerRepository(pool)
		dbPool = pool
	} else {
		slog.Warn("Using in-memory player store; data is lost on restart")
		store = repository.NewMemoryStore()
	}

	// Core services share one lock manager so every command for a player
	// serializes on the same mutex.
	locks := concurrency.NewLockManager()
	bus := event.NewMemoryBus()
	mutator := inventory.NewMutator(cat)
	pricingSource := pricing.NewCachingSource(pricing.NewStaticSource(cat))
	achievements := achievement.NewService(achievement.DefaultRules())

	engine := trade.NewEngine(cat, mutator, pricingSource, narrativeRegistry, achievements, store, bus, locks)
	overflow := inventory.NewOverflowResolver(cat, engine)
	distributor := loot.NewDistributor()
	playerService := player.NewService(cat, mutator, distributor, overflow, pricingSource, store, bus, locks)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, cat, playerService, engine)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
