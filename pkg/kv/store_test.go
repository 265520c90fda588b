package kv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/db"
	"github.com/angelmondragon/mallkv/pkg/metrics"
	"github.com/angelmondragon/mallkv/pkg/migrate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(newFakeRedis()),
		"sql":    newSQLiteStore(t),
	}
}

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := fmt.Sprintf("file:kv_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.Open(sqlite.Open(dsn), config.DriverSQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQLDB()
	require.NoError(t, err)
	require.NoError(t, migrate.Up(context.Background(), sqlDB, config.DriverSQLite))
	return NewSQLStore(client.DB())
}

func TestStoreContract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := store.Read(ctx, "cart_u1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Write(ctx, "cart_u1", `[{"id":1}]`))
			require.NoError(t, store.Write(ctx, "cart_u1", `[{"id":2}]`))
			value, ok, err := store.Read(ctx, "cart_u1")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `[{"id":2}]`, value)

			require.NoError(t, store.Remove(ctx, "cart_u1"))
			require.NoError(t, store.Remove(ctx, "cart_u1"))
			_, ok, err = store.Read(ctx, "cart_u1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestKeysWithPrefixIsExactAndSorted(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, key := range []string{"orders_u2", "orders_guest", "orders_u1", "ORDERS_x", "ordersX", "cart_u1", "orders%_y"} {
				require.NoError(t, store.Write(ctx, key, "[]"))
			}

			keys, err := store.KeysWithPrefix(ctx, "orders_")
			require.NoError(t, err)
			assert.Equal(t, []string{"orders_guest", "orders_u1", "orders_u2"}, keys)

			keys, err = store.KeysWithPrefix(ctx, "missing_")
			require.NoError(t, err)
			assert.NotNil(t, keys)
			assert.Empty(t, keys)
		})
	}
}

type line struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

func TestListHelpers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	items, err := ReadList[line](ctx, store, "cart_guest")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, WriteList[line](ctx, store, "cart_guest", nil))
	raw, ok, _ := store.Read(ctx, "cart_guest")
	require.True(t, ok)
	assert.Equal(t, "[]", raw)

	require.NoError(t, WriteList(ctx, store, "cart_guest", []line{{ID: 1, Quantity: 2}}))
	items, err = ReadList[line](ctx, store, "cart_guest")
	require.NoError(t, err)
	assert.Equal(t, []line{{ID: 1, Quantity: 2}}, items)

	require.NoError(t, store.Write(ctx, "cart_bad", "{not json"))
	_, err = ReadList[line](ctx, store, "cart_bad")
	assert.Error(t, err)
}

func TestInstrumentedCountsFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := Instrument(failingStore{}, "memory", metrics.NewStorageMetrics(reg))

	_, _, err := store.Read(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, store.Write(context.Background(), "k", "v"))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var failures float64
	for _, mf := range mfs {
		if mf.GetName() != "mall_storage_op_failures_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			failures += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), failures)
}

func TestOpenMemoryAndSQL(t *testing.T) {
	ctx := context.Background()

	handle, err := Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, handle.Backend)
	require.NoError(t, handle.Close())

	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendSQL},
		DB: config.DBConfig{
			Driver:      config.DriverSQLite,
			DSN:         "file:kv_open_test?mode=memory&cache=shared",
			AutoMigrate: true,
		},
	}
	handle, err = Open(ctx, cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })

	require.NoError(t, handle.Store.Write(ctx, "products", "[]"))
	value, ok, err := handle.Store.Read(ctx, "products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	_, err = Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: "etcd"}}, nil, nil)
	assert.Error(t, err)
}

type failingStore struct{}

var errBackendDown = errors.New("backend down")

func (failingStore) Read(context.Context, string) (string, bool, error) {
	return "", false, errBackendDown
}
func (failingStore) Write(context.Context, string, string) error { return errBackendDown }
func (failingStore) Remove(context.Context, string) error        { return errBackendDown }
func (failingStore) KeysWithPrefix(context.Context, string) ([]string, error) {
	return nil, errBackendDown
}

// fakeRedis mirrors pkg/redis.Client over a map.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeRedis) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRedis) ScanPrefix(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}
