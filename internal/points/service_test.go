package points

import (
	"context"
	"testing"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditAccumulates(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)

	assert.Zero(t, svc.Balance(ctx, "u1"))

	balance, err := svc.Credit(ctx, "u1", 598)
	require.NoError(t, err)
	assert.EqualValues(t, 598, balance)

	balance, err = svc.Credit(ctx, "u1", 180.9)
	require.NoError(t, err)
	assert.EqualValues(t, 778, balance)

	raw, ok, err := store.Read(ctx, "points_u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "778", raw)
	assert.EqualValues(t, 778, svc.Balance(ctx, "u1"))
}

func TestGuestCannotEarnPoints(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)

	_, err := svc.Credit(ctx, shard.Guest, 100)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Zero(t, store.Len())
	assert.Zero(t, svc.Balance(ctx, shard.Guest))
}

func TestBalanceReadsLegacyFractionalValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Write(ctx, "points_u1", "120.5"))
	svc := NewService(store, nil)

	assert.EqualValues(t, 120, svc.Balance(ctx, "u1"))
}

func TestCorruptBalanceResetsOnCredit(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Write(ctx, "points_u1", "lots"))
	svc := NewService(store, nil)

	assert.Zero(t, svc.Balance(ctx, "u1"))
	balance, err := svc.Credit(ctx, "u1", 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, balance)
}

func TestNegativeCreditRejected(t *testing.T) {
	_, err := NewService(kv.NewMemoryStore(), nil).Credit(context.Background(), "u1", -1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
