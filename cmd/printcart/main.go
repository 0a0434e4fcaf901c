package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"printcart/internal/cart"
	"printcart/internal/cart/session"
	"printcart/internal/catalog"
	"printcart/internal/config"
	"printcart/internal/storage"
	redisstorage "printcart/internal/storage/redis"
	"printcart/pkg/api"
	"printcart/pkg/logger"
	"printcart/pkg/redis"
)

// ENTRY POINT
//
// Wires the cart session service: configuration, logging, the snapshot
// storage the cart survives restarts through, the catalog source, and the
// quote sink. The storefront UI drives the session manager; every cart
// mutation is persisted as it happens.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init PostgreSQL storage", zap.Error(err))
	}
	defer pgStorage.Close()

	if err := storage.RunMigrations(ctx, pgStorage.DB(), zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var catalogSource catalog.Source = catalog.NewStorageSource(pgStorage)
	if cfg.Catalog.BaseURL != "" {
		apiClient := api.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.RequestTimeout, zapLogger)
		catalogSource = catalog.NewAPISource(apiClient)
		zapLogger.Info("Using remote catalog API", zap.String("base_url", cfg.Catalog.BaseURL))
	}

	rates := cart.PriceRates{
		BaseUnitRate: cfg.Pricing.BaseUnitRate,
		DeliveryFee:  cfg.Pricing.DeliveryFee,
		VATRate:      cfg.Pricing.VATRate,
		EURRate:      cfg.Pricing.EURRate,
	}

	products, err := catalogSource.ListProducts(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to list catalog products", zap.Error(err))
	}
	zapLogger.Info("Catalog ready", zap.Int("products", len(products)))

	snapshots := redisstorage.New(redisClient)
	store := cart.NewStore(rates)
	manager := session.New(cfg.Session.ID, store, rates, snapshots, catalogSource, pgStorage, zapLogger)
	manager.EnableCheckoutLimit(pgStorage, cfg.Session.CheckoutLimit, cfg.Session.CheckoutWindow)
	if cfg.Session.QuoteExportDir != "" {
		manager.EnableQuoteExport(cfg.Session.QuoteExportDir)
		zapLogger.Info("Quote export enabled", zap.String("dir", cfg.Session.QuoteExportDir))
	}

	if err := manager.Restore(ctx); err != nil {
		zapLogger.Fatal("Failed to restore cart session", zap.Error(err))
	}

	// Persist every change as it happens. The subscriber gets the snapshot
	// directly, so it never calls back into the store.
	unsubscribe := store.Subscribe(func(state cart.CartState) {
		if err := snapshots.SetCartSnapshot(ctx, cfg.Session.ID, state); err != nil {
			zapLogger.Error("Failed to persist cart snapshot", zap.Error(err))
		}
	})
	defer unsubscribe()

	zapLogger.Info("Cart session service ready",
		zap.String("session_id", cfg.Session.ID),
		zap.Int("items", store.TotalItems()),
		zap.Duration("snapshot_ttl", redisClient.DefaultTTL()))

	<-ctx.Done()

	if err := manager.Persist(context.Background()); err != nil {
		zapLogger.Error("Failed to persist cart on shutdown", zap.Error(err))
	}

	zapLogger.Info("Cart session service shutdown gracefully")
}
