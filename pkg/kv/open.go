package kv

import (
	"context"
	"fmt"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/db"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/metrics"
	"github.com/angelmondragon/mallkv/pkg/migrate"
	"github.com/angelmondragon/mallkv/pkg/redis"
)

// Handle is an opened backend plus the function releasing its connections.
type Handle struct {
	Store   Store
	Backend string
	closeFn func() error
}

// Close releases the backend connections. Safe to call on a memory handle.
func (h *Handle) Close() error {
	if h == nil || h.closeFn == nil {
		return nil
	}
	return h.closeFn()
}

// Open builds the backend selected by cfg.Storage.Backend. The SQL backend
// applies pending migrations first when auto-migration is enabled.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger, m *metrics.StorageMetrics) (*Handle, error) {
	logg = logger.OrNop(logg)
	backend := cfg.Storage.Backend
	ctx = logg.WithField(ctx, "backend", backend)

	var (
		store   Store
		closeFn func() error
	)
	switch backend {
	case config.BackendMemory, "":
		backend = config.BackendMemory
		store = NewMemoryStore()
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("opening redis backend: %w", err)
		}
		store = NewRedisStore(client)
		closeFn = client.Close
	case config.BackendSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("opening sql backend: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		store = NewSQLStore(client.DB())
		closeFn = client.Close
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", backend)
	}

	logg.Info(ctx, "storage backend ready")
	return &Handle{
		Store:   Instrument(store, backend, m),
		Backend: backend,
		closeFn: closeFn,
	}, nil
}
