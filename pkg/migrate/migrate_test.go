package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateFSRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{
		"m/001_bad.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	require.Error(t, ValidateFS(fsys, "m"))

	fsys = fstest.MapFS{
		"m/20260101000000_ok.sql": {Data: []byte("-- +goose Up\n")},
	}
	require.Error(t, ValidateFS(fsys, "m"))
}

func TestUpCreatesKVTableOnSQLite(t *testing.T) {
	client, err := db.Open(sqlite.Open("file:migrate_up_test?mode=memory&cache=shared"), config.DriverSQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQLDB()
	require.NoError(t, err)

	require.NoError(t, Up(context.Background(), sqlDB, config.DriverSQLite))
	require.NoError(t, Up(context.Background(), sqlDB, config.DriverSQLite))
	require.True(t, client.DB().Migrator().HasTable("kv_entries"))
}

func TestMaybeRunSkipsNonSQLBackends(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}
	require.NoError(t, MaybeRun(context.Background(), cfg, nil, nil))
}

func TestDialectFor(t *testing.T) {
	d, err := dialectFor(config.DriverPostgres)
	require.NoError(t, err)
	require.Equal(t, "postgres", d)

	_, err = dialectFor("oracle")
	require.Error(t, err)
}
