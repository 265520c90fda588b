package main

import (
	"context"
	"fmt"
	"os"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/mall"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"backend": cfg.Storage.Backend,
	})

	store, err := mall.Open(ctx, cfg, mall.Options{
		Logger:     logg,
		Registerer: prometheus.NewRegistry(),
	})
	requireResource(ctx, logg, "storage", err)
	defer store.Close()

	report, err := store.Seed(ctx)
	requireResource(ctx, logg, "seed", err)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"catalog_seeded": report.CatalogSeeded,
		"admin_seeded":   report.AdminSeeded,
		"products":       store.Catalog.Count(ctx),
		"users":          store.Users.Count(ctx),
	}), "seed completed")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
