package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/db"
	"github.com/angelmondragon/mallkv/pkg/logger"
)

// MaybeRun applies the storage migrations when the SQL backend is selected and
// auto-migration is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg.Storage.Backend != config.BackendSQL || !cfg.DB.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg = logger.OrNop(logg)
	ctx = logg.WithFields(ctx, map[string]any{"driver": client.Driver(), "dir": Dir})
	logg.Info(ctx, "running goose migrations")

	if err := Up(ctx, sqlDB, client.Driver()); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
