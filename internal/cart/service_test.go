package cart

import (
	"context"
	"testing"

	product "github.com/angelmondragon/mallkv/internal/products"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jacket = Snapshot{ID: 1, Name: "时尚休闲外套", Price: 299, Image: "jacket.jpg"}
	honey  = Snapshot{ID: 4, Name: "有机蜂蜜", Price: 89, Image: "honey.jpg"}
)

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore(), nil)

	require.NoError(t, svc.Add(ctx, "u1", jacket))
	require.NoError(t, svc.Add(ctx, "u1", jacket))

	lines := svc.List(ctx, "u1")
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].Selected)
	assert.Equal(t, 2, svc.Count(ctx, "u1"))
	assert.Equal(t, 598.0, svc.SelectedTotal(ctx, "u1"))
}

func TestAddKeepsOriginalSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore(), nil)

	require.NoError(t, svc.Add(ctx, "u1", jacket))
	repriced := jacket
	repriced.Price = 199
	repriced.Name = "外套"
	require.NoError(t, svc.Add(ctx, "u1", repriced))

	lines := svc.List(ctx, "u1")
	require.Len(t, lines, 1)
	assert.Equal(t, 299.0, lines[0].Price)
	assert.Equal(t, "时尚休闲外套", lines[0].Name)
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore(), nil)
	require.NoError(t, svc.Add(ctx, "u1", jacket))
	require.NoError(t, svc.Add(ctx, "u1", honey))

	require.NoError(t, svc.SetQuantity(ctx, "u1", honey.ID, 3))
	assert.Equal(t, 4, svc.Count(ctx, "u1"))

	require.NoError(t, svc.SetQuantity(ctx, "u1", jacket.ID, 0))
	lines := svc.List(ctx, "u1")
	require.Len(t, lines, 1)
	assert.Equal(t, honey.ID, lines[0].ID)

	err := svc.SetQuantity(ctx, "u1", 999, 2)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSelectionAndClearSelected(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore(), nil)
	require.NoError(t, svc.Add(ctx, "u1", jacket))
	require.NoError(t, svc.Add(ctx, "u1", honey))
	require.NoError(t, svc.ToggleSelected(ctx, "u1", honey.ID))

	selected := svc.Selected(ctx, "u1")
	require.Len(t, selected, 1)
	assert.Equal(t, jacket.ID, selected[0].ID)
	assert.Equal(t, 299.0, svc.SelectedTotal(ctx, "u1"))

	require.NoError(t, svc.ClearSelected(ctx, "u1"))
	lines := svc.List(ctx, "u1")
	require.Len(t, lines, 1)
	assert.Equal(t, honey.ID, lines[0].ID)
	assert.False(t, lines[0].Selected)

	require.NoError(t, svc.SetAllSelected(ctx, "u1", true))
	assert.Equal(t, 89.0, svc.SelectedTotal(ctx, "u1"))
}

func TestClearAllAndOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := NewService(store, nil)
	require.NoError(t, svc.Add(ctx, "u1", jacket))
	require.NoError(t, svc.Add(ctx, shard.Guest, honey))

	assert.Equal(t, 1, svc.Count(ctx, shard.Guest))
	require.NoError(t, svc.ClearAll(ctx, "u1"))
	_, ok, _ := store.Read(ctx, "cart_u1")
	assert.False(t, ok)
	assert.Zero(t, svc.Count(ctx, "u1"))
	assert.Equal(t, 1, svc.Count(ctx, shard.Guest))

	assert.True(t, pkgerrors.IsCode(svc.Remove(ctx, "u1", jacket.ID), pkgerrors.CodeNotFound))
}

func TestAddValidatesSnapshot(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), nil)
	err := svc.Add(context.Background(), "u1", Snapshot{Name: "x", Price: -1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSnapshotOf(t *testing.T) {
	p := product.DefaultCatalog()[0]
	snap := SnapshotOf(p)
	assert.Equal(t, Snapshot{ID: 1, Name: p.Name, Price: 299, Image: p.Image}, snap)
}

func TestAggregatesMatchLinesProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	catalog := []Snapshot{jacket, honey, {ID: 19, Name: "面膜", Price: 59.9}}

	properties.Property("count and totals agree with stored lines", prop.ForAll(
		func(picks []int) bool {
			ctx := context.Background()
			svc := NewService(kv.NewMemoryStore(), nil)
			added := map[int]int{}
			for _, pick := range picks {
				snap := catalog[pick%len(catalog)]
				if err := svc.Add(ctx, "u1", snap); err != nil {
					return false
				}
				added[snap.ID]++
			}

			lines := svc.List(ctx, "u1")
			if len(lines) != len(added) {
				return false
			}
			for _, l := range lines {
				if l.Quantity != added[l.ID] {
					return false
				}
			}
			return svc.Count(ctx, "u1") == len(picks) &&
				svc.SelectedTotal(ctx, "u1") == Total(lines)
		},
		gen.SliceOf(gen.IntRange(0, 8)),
	))

	properties.TestingRun(t)
}
