package coupons

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/angelmondragon/mallkv/pkg/config"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always draws n, so percent = min + n.
type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }

func newTestService(t *testing.T, source Source) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:  kv.NewMemoryStore(),
		Config: config.CouponConfig{MinPercent: 3, MaxPercent: 15},
		Source: source,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateTenPercentOfTwoHundred(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixedSource(7))

	coupon, err := svc.Generate(ctx, "u1", 200)
	require.NoError(t, err)
	assert.Equal(t, 10, coupon.DiscountPercent)
	assert.Equal(t, 20.0, coupon.DiscountAmount)
	assert.Equal(t, 200.0, coupon.OriginalAmount)
	assert.Equal(t, "u1", coupon.UserID)
	assert.False(t, coupon.IsUsed)
}

func TestGeneratePrependsNewest(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, fixedSource(0))

	first, err := svc.Generate(ctx, "u1", 100)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, "u1", 300)
	require.NoError(t, err)

	list := svc.List(ctx, "u1")
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Empty(t, svc.List(ctx, "u2"))
}

func TestRedeemIsOneShot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	coupon, err := svc.Generate(ctx, "u1", 1000)
	require.NoError(t, err)

	redeemed, ok, err := svc.Redeem(ctx, "u1", coupon.ID, "order_a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, redeemed.IsUsed)
	assert.Equal(t, "order_a", redeemed.OrderID)

	_, ok, err = svc.Redeem(ctx, "u1", coupon.ID, "order_b")
	require.NoError(t, err)
	assert.False(t, ok)

	stored, found := svc.Get(ctx, "u1", coupon.ID)
	require.True(t, found)
	assert.True(t, stored.IsUsed)
	assert.Equal(t, "order_a", stored.OrderID)

	_, ok, err = svc.Redeem(ctx, "u1", "coupon_missing", "order_c")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, svc.Available(ctx, "u1"))
	assert.Len(t, svc.Used(ctx, "u1"), 1)
}

func TestRedeemIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	coupon, err := svc.Generate(ctx, "u1", 100)
	require.NoError(t, err)

	_, ok, err := svc.Redeem(ctx, "u2", coupon.ID, "order_x")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, svc.Available(ctx, "u1"), 1)
}

func TestGenerateRejectsNegativeAmount(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Generate(context.Background(), "u1", -1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestNewServiceRejectsBadRange(t *testing.T) {
	_, err := NewService(ServiceParams{Store: kv.NewMemoryStore(), Config: config.CouponConfig{MinPercent: 20, MaxPercent: 10}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{})
	assert.Error(t, err)

	svc, err := NewService(ServiceParams{Store: kv.NewMemoryStore()})
	require.NoError(t, err)
	assert.Equal(t, 3, svc.minPercent)
	assert.Equal(t, 15, svc.maxPercent)
}

func TestGenerateEconomicsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("percent in [3,15] and discount = floor(1000*pct/100)", prop.ForAll(
		func(seed uint64) bool {
			svc := newTestService(t, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
			coupon, err := svc.Generate(context.Background(), "u1", 1000)
			if err != nil {
				return false
			}
			p := coupon.DiscountPercent
			return p >= 3 && p <= 15 && coupon.DiscountAmount == float64(1000*p/100)
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
