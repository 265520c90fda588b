package cart

import (
	"context"
	"slices"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/money"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/angelmondragon/mallkv/pkg/validate"
	"github.com/shopspring/decimal"
)

// Service owns the per-owner carts ("cart_<owner>"). Counts and totals are
// computed from the stored lines on every read.
type Service struct {
	carts *kv.ShardSet[Line]
	logg  *logger.Logger
}

// NewService binds the carts to store.
func NewService(store kv.Store, logg *logger.Logger) *Service {
	logg = logger.OrNop(logg)
	return &Service{
		carts: kv.NewShardSet[Line](store, shard.KindCart, logg),
		logg:  logg,
	}
}

// List returns owner's lines in insertion order.
func (s *Service) List(ctx context.Context, owner shard.Owner) []Line {
	return s.carts.LoadOrEmpty(ctx, owner)
}

// Add puts one unit of snap in owner's cart. An existing line for the same
// product gains one unit and keeps its original snapshot.
func (s *Service) Add(ctx context.Context, owner shard.Owner, snap Snapshot) error {
	if err := validate.Struct(snap); err != nil {
		return err
	}
	lines, err := s.carts.LoadForUpdate(ctx, owner)
	if err != nil {
		return err
	}
	if idx := indexOf(lines, snap.ID); idx >= 0 {
		lines[idx].Quantity++
	} else {
		lines = append(lines, Line{
			ID:       snap.ID,
			Name:     snap.Name,
			Price:    snap.Price,
			Quantity: 1,
			Image:    snap.Image,
			Selected: true,
		})
	}
	return s.carts.Save(ctx, owner, lines)
}

// SetQuantity sets the quantity of productID. Anything below 1 removes the line.
func (s *Service) SetQuantity(ctx context.Context, owner shard.Owner, productID, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, owner, productID)
	}
	return s.mutateLine(ctx, owner, productID, func(l *Line) { l.Quantity = quantity })
}

// ToggleSelected flips the selected flag of productID.
func (s *Service) ToggleSelected(ctx context.Context, owner shard.Owner, productID int) error {
	return s.mutateLine(ctx, owner, productID, func(l *Line) { l.Selected = !l.Selected })
}

// SetAllSelected sets the selected flag on every line.
func (s *Service) SetAllSelected(ctx context.Context, owner shard.Owner, selected bool) error {
	lines, err := s.carts.LoadForUpdate(ctx, owner)
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].Selected = selected
	}
	return s.carts.Save(ctx, owner, lines)
}

// Remove drops the line of productID.
func (s *Service) Remove(ctx context.Context, owner shard.Owner, productID int) error {
	lines, err := s.carts.LoadForUpdate(ctx, owner)
	if err != nil {
		return err
	}
	idx := indexOf(lines, productID)
	if idx < 0 {
		return lineNotFound(productID)
	}
	return s.carts.Save(ctx, owner, slices.Delete(lines, idx, idx+1))
}

// ClearSelected removes every selected line and keeps the rest.
func (s *Service) ClearSelected(ctx context.Context, owner shard.Owner) error {
	lines, err := s.carts.LoadForUpdate(ctx, owner)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(lines, func(l Line) bool { return l.Selected })
	return s.carts.Save(ctx, owner, kept)
}

// ClearAll empties owner's cart.
func (s *Service) ClearAll(ctx context.Context, owner shard.Owner) error {
	return s.carts.Clear(ctx, owner)
}

// Count is the sum of quantities across all lines.
func (s *Service) Count(ctx context.Context, owner shard.Owner) int {
	total := 0
	for _, l := range s.List(ctx, owner) {
		total += l.Quantity
	}
	return total
}

// Selected returns the selected lines.
func (s *Service) Selected(ctx context.Context, owner shard.Owner) []Line {
	return SelectedOf(s.List(ctx, owner))
}

// SelectedTotal is the sum of price × quantity over the selected lines.
func (s *Service) SelectedTotal(ctx context.Context, owner shard.Owner) float64 {
	return Total(s.Selected(ctx, owner))
}

// SelectedOf filters lines to the selected ones.
func SelectedOf(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}

// Total is the sum of price × quantity over lines.
func Total(lines []Line) float64 {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(money.Line(l.Price, l.Quantity))
	}
	return money.Amount(total)
}

func (s *Service) mutateLine(ctx context.Context, owner shard.Owner, productID int, fn func(*Line)) error {
	lines, err := s.carts.LoadForUpdate(ctx, owner)
	if err != nil {
		return err
	}
	idx := indexOf(lines, productID)
	if idx < 0 {
		return lineNotFound(productID)
	}
	fn(&lines[idx])
	return s.carts.Save(ctx, owner, lines)
}

func indexOf(lines []Line, productID int) int {
	return slices.IndexFunc(lines, func(l Line) bool { return l.ID == productID })
}

func lineNotFound(productID int) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").
		WithDetails(map[string]any{"product_id": productID})
}
