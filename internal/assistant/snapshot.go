// Package assistant assembles the read-only view a conversational assistant
// is grounded on: the whole catalog plus the signed-in owner's orders.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/mallkv/internal/orders"
	product "github.com/angelmondragon/mallkv/internal/products"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/shard"
)

type catalogReader interface {
	List(ctx context.Context) []product.Product
}

type orderReader interface {
	ListForUser(ctx context.Context, owner shard.Owner) []orders.Order
}

// Snapshot is serialised as {"products": [...], "orders": [...]}.
type Snapshot struct {
	Products []product.Product `json:"products"`
	Orders   []orders.Order    `json:"orders"`
}

// Builder exposes no write path.
type Builder struct {
	catalog catalogReader
	orders  orderReader
	logg    *logger.Logger
}

func NewBuilder(catalog catalogReader, ordersSrc orderReader, logg *logger.Logger) *Builder {
	return &Builder{catalog: catalog, orders: ordersSrc, logg: logger.OrNop(logg)}
}

// Snapshot never reads another owner's shard.
func (b *Builder) Snapshot(ctx context.Context, owner shard.Owner) Snapshot {
	return Snapshot{
		Products: b.catalog.List(ctx),
		Orders:   b.orders.ListForUser(ctx, owner),
	}
}

// JSON renders the snapshot indented with two spaces.
func (b *Builder) JSON(ctx context.Context, owner shard.Owner) ([]byte, error) {
	snapshot := b.Snapshot(ctx, owner)
	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode assistant snapshot: %w", err)
	}
	b.logg.Debug(b.logg.WithFields(b.logg.WithOwner(ctx, owner.String()), map[string]any{
		"products": len(snapshot.Products),
		"orders":   len(snapshot.Orders),
	}), "assistant snapshot built")
	return out, nil
}
