package product

import (
	"context"
	"slices"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/angelmondragon/mallkv/pkg/validate"
)

// Service owns the product catalog stored under the "products" key.
//
// New ids are the highest stored id + 1, so deleting the newest product lets
// the next add reuse its id.
type Service struct {
	catalog *kv.Collection[Product]
	logg    *logger.Logger
}

// NewService binds the catalog to store.
func NewService(store kv.Store, logg *logger.Logger) *Service {
	logg = logger.OrNop(logg)
	return &Service{
		catalog: kv.NewCollection[Product](store, shard.ProductsKey, logg),
		logg:    logg,
	}
}

// Seed writes DefaultCatalog when no catalog exists yet. It reports whether
// anything was written.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	if s.catalog.Exists(ctx) {
		return false, nil
	}
	catalog := DefaultCatalog()
	if err := s.catalog.Save(ctx, catalog); err != nil {
		return false, err
	}
	s.logg.Info(s.logg.WithField(ctx, "products", len(catalog)), "default catalog seeded")
	return true, nil
}

// List returns the full catalog in stored order, inactive products included.
func (s *Service) List(ctx context.Context) []Product {
	return s.catalog.LoadOrEmpty(ctx)
}

// GetByID returns the product with id.
func (s *Service) GetByID(ctx context.Context, id int) (Product, bool) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ByCategory returns the active products of category in stored order.
// CategoryAll matches every category.
func (s *Service) ByCategory(ctx context.Context, category string) []Product {
	out := make([]Product, 0)
	for _, p := range s.List(ctx) {
		if !p.IsActive() {
			continue
		}
		if category == CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ByCategorySortedBySales orders ByCategory by sales, highest first. Equal
// sales keep their stored order.
func (s *Service) ByCategorySortedBySales(ctx context.Context, category string) []Product {
	out := s.ByCategory(ctx, category)
	slices.SortStableFunc(out, func(a, b Product) int {
		return b.Sales - a.Sales
	})
	return out
}

// Add validates draft, appends it with the next id and returns that id.
func (s *Service) Add(ctx context.Context, draft Draft) (int, error) {
	if err := validate.Struct(draft); err != nil {
		return 0, err
	}
	catalog, err := s.catalog.LoadForUpdate(ctx)
	if err != nil {
		return 0, err
	}

	id := maxID(catalog) + 1
	catalog = append(catalog, draft.toProduct(id))
	if err := s.catalog.Save(ctx, catalog); err != nil {
		return 0, err
	}

	s.logg.Info(s.logg.WithField(ctx, "product_id", id), "product added")
	return id, nil
}

// Update applies patch to the product with id and returns the stored result.
func (s *Service) Update(ctx context.Context, id int, patch Patch) (Product, error) {
	if err := validate.Struct(patch); err != nil {
		return Product{}, err
	}
	catalog, err := s.catalog.LoadForUpdate(ctx)
	if err != nil {
		return Product{}, err
	}
	idx := indexOf(catalog, id)
	if idx < 0 {
		return Product{}, notFound(id)
	}
	patch.applyTo(&catalog[idx])
	if err := s.catalog.Save(ctx, catalog); err != nil {
		return Product{}, err
	}
	return catalog[idx], nil
}

// Delete removes the product with id. Carts and orders keep their snapshots.
func (s *Service) Delete(ctx context.Context, id int) error {
	catalog, err := s.catalog.LoadForUpdate(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(catalog, id)
	if idx < 0 {
		return notFound(id)
	}
	return s.catalog.Save(ctx, slices.Delete(catalog, idx, idx+1))
}

// IncrementSales adds by to the sales counter of id. A product that no longer
// exists is skipped silently.
func (s *Service) IncrementSales(ctx context.Context, id, by int) error {
	return s.RecordSales(ctx, map[int]int{id: by})
}

// RecordSales applies several sales increments in one catalog rewrite.
// Unknown ids and non-positive quantities are ignored.
func (s *Service) RecordSales(ctx context.Context, sold map[int]int) error {
	catalog, err := s.catalog.LoadForUpdate(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range catalog {
		if qty := sold[catalog[i].ID]; qty > 0 {
			catalog[i].Sales += qty
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.catalog.Save(ctx, catalog)
}

// Count returns the number of stored products.
func (s *Service) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

func indexOf(catalog []Product, id int) int {
	return slices.IndexFunc(catalog, func(p Product) bool { return p.ID == id })
}

func maxID(catalog []Product) int {
	highest := 0
	for _, p := range catalog {
		highest = max(highest, p.ID)
	}
	return highest
}

func notFound(id int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": id})
}
