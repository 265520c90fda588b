package assistant

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/angelmondragon/mallkv/internal/cart"
	"github.com/angelmondragon/mallkv/internal/orders"
	product "github.com/angelmondragon/mallkv/internal/products"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotScopesOrdersToOwner(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	catalog := product.NewService(store, nil)
	_, err := catalog.Seed(ctx)
	require.NoError(t, err)
	ledger, err := orders.NewLedger(orders.LedgerParams{Store: store, Sales: catalog})
	require.NoError(t, err)

	mine, err := ledger.Create(ctx, "u1", []cart.Line{{ID: 1, Name: "时尚休闲外套", Price: 299, Quantity: 1}}, "", nil)
	require.NoError(t, err)
	_, err = ledger.Create(ctx, "u2", []cart.Line{{ID: 4, Name: "有机蜂蜜", Price: 89, Quantity: 1}}, "", nil)
	require.NoError(t, err)

	builder := NewBuilder(catalog, ledger, nil)
	raw, err := builder.JSON(ctx, "u1")
	require.NoError(t, err)

	var decoded struct {
		Products []map[string]any `json:"products"`
		Orders   []map[string]any `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Products, 20)
	require.Len(t, decoded.Orders, 1)
	assert.Equal(t, mine, decoded.Orders[0]["id"])
	assert.Contains(t, string(raw), "\n  \"products\"")
}

func TestSnapshotOfEmptyStoreUsesEmptyArrays(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	ledger, err := orders.NewLedger(orders.LedgerParams{Store: store})
	require.NoError(t, err)

	raw, err := NewBuilder(product.NewService(store, nil), ledger, nil).JSON(ctx, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[],"orders":[]}`, string(raw))
}
