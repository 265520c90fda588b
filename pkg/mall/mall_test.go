package mall

import (
	"context"
	"testing"

	"github.com/angelmondragon/mallkv/internal/address"
	"github.com/angelmondragon/mallkv/internal/cart"
	"github.com/angelmondragon/mallkv/internal/checkout"
	"github.com/angelmondragon/mallkv/internal/users"
	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/enums"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenPercent draws 7 from the 3–15 range.
type tenPercent struct{}

func (tenPercent) IntN(int) int { return 7 }

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev},
		Storage: config.StorageConfig{Backend: config.BackendMemory},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    64,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Seed:   config.SeedConfig{AdminEmail: "admin@mall.com", AdminSecret: "admin123", AdminName: "管理员"},
		Coupon: config.CouponConfig{MinPercent: 3, MaxPercent: 15},
		Orders: config.OrdersConfig{DefaultPaymentMethod: "微信支付", RecentWindow: 5},
	}
}

func newSeededMall(t *testing.T) *Mall {
	t.Helper()
	m, err := Open(context.Background(), testConfig(), Options{
		Registerer:   prometheus.NewRegistry(),
		CouponSource: tenPercent{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	report, err := m.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, report.CatalogSeeded)
	assert.True(t, report.AdminSeeded)
	return m
}

func TestNewRequiresStoreAndConfig(t *testing.T) {
	_, err := New(nil, testConfig(), Options{})
	assert.Error(t, err)
	_, err = New(kv.NewMemoryStore(), nil, Options{})
	assert.Error(t, err)
}

func TestSeedIsFirstRunOnly(t *testing.T) {
	m := newSeededMall(t)
	report, err := m.Seed(context.Background())
	require.NoError(t, err)
	assert.False(t, report.CatalogSeeded)
	assert.False(t, report.AdminSeeded)

	admin, ok := m.Users.ValidateCredentials(context.Background(), "admin@mall.com", "admin123")
	require.True(t, ok)
	assert.Equal(t, users.AdminID, admin.ID)
	assert.Equal(t, enums.UserRoleAdmin, admin.Role)
}

func TestCartToShippedAcrossOwners(t *testing.T) {
	ctx := context.Background()
	m := newSeededMall(t)

	jacket, ok := m.Catalog.GetByID(ctx, 1)
	require.True(t, ok)
	require.Equal(t, 299.0, jacket.Price)

	require.NoError(t, m.Cart.Add(ctx, "u1", cart.SnapshotOf(jacket)))
	assert.Equal(t, 1, m.Cart.Count(ctx, "u1"))
	require.NoError(t, m.Cart.Add(ctx, "u1", cart.SnapshotOf(jacket)))
	assert.Equal(t, 2, m.Cart.Count(ctx, "u1"))

	orderID, err := m.Ledger.Create(ctx, "u1", m.Cart.Selected(ctx, "u1"), "微信支付", nil)
	require.NoError(t, err)

	order, ok := m.Ledger.GetByID(ctx, "u1", orderID)
	require.True(t, ok)
	assert.Equal(t, 598.0, order.TotalPrice)

	jacket, ok = m.Catalog.GetByID(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, 2, jacket.Sales)
	assert.Len(t, m.Cart.List(ctx, "u1"), 1)

	require.NoError(t, m.Ledger.UpdateStatusGlobally(ctx, orderID, enums.OrderStatusShipped))

	seen, ok := m.Ledger.GetByID(ctx, "u2", orderID)
	require.True(t, ok)
	assert.Equal(t, enums.OrderStatusShipped, seen.Status)
	assert.Equal(t, 1, m.Users.OrderCountFor(ctx, "u1"))
}

func TestCheckoutFlowWithCouponAndPoints(t *testing.T) {
	ctx := context.Background()
	m := newSeededMall(t)

	user, err := m.Users.Register(ctx, users.RegisterInput{Email: "ming@example.com", Secret: "secret1", Name: "小明"})
	require.NoError(t, err)
	owner := shard.OwnerOf(user.ID)

	_, err = m.Addresses.Add(ctx, owner, address.Draft{Name: "小明", Phone: "13900000000", Address: "杭州市西湖区", IsDefault: true})
	require.NoError(t, err)

	honey, ok := m.Catalog.GetByID(ctx, 4)
	require.True(t, ok)
	require.NoError(t, m.Cart.Add(ctx, owner, cart.SnapshotOf(honey)))
	require.NoError(t, m.Cart.SetQuantity(ctx, owner, honey.ID, 3))

	order, err := m.Checkout.PlaceOrder(ctx, owner, checkout.PlaceOrderInput{})
	require.NoError(t, err)
	assert.Equal(t, 267.0, order.TotalPrice)
	assert.Equal(t, "微信支付", order.PaymentMethod)
	assert.Zero(t, m.Cart.Count(ctx, owner))

	coupon, err := m.Checkout.OfferCoupon(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, coupon.DiscountPercent)
	assert.Equal(t, 26.0, coupon.DiscountAmount)

	paid, err := m.Checkout.Pay(ctx, owner, order.ID, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 241.0, paid.TotalPrice)
	assert.Empty(t, m.Coupons.Available(ctx, owner))

	require.NoError(t, m.Checkout.Ship(ctx, order.ID))
	_, balance, err := m.Checkout.ConfirmReceipt(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 241, balance)

	summary := m.Dashboard.Summary(ctx)
	assert.Equal(t, 1, summary.TotalOrders)
	assert.Equal(t, 241.0, summary.Revenue)
	assert.Equal(t, 20, summary.TotalProducts)
	assert.Equal(t, 2, summary.TotalUsers)
	assert.Equal(t, 1, summary.OrdersByStatus[enums.OrderStatusCompleted])

	snapshot := m.Assistant.Snapshot(ctx, owner)
	assert.Len(t, snapshot.Orders, 1)
	assert.Empty(t, m.Assistant.Snapshot(ctx, "u2").Orders)
}
