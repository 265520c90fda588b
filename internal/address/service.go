package address

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/angelmondragon/mallkv/pkg/validate"
	"github.com/google/uuid"
)

// Service owns the per-owner address books ("addresses_<owner>").
//
// At most one address per owner is the default. Every write that sets a
// default clears the flag on the siblings in the same list rewrite, so no
// stored state ever has two defaults.
type Service struct {
	books *kv.ShardSet[Address]
	logg  *logger.Logger
	now   func() time.Time
}

// NewService binds the address books to store.
func NewService(store kv.Store, logg *logger.Logger) *Service {
	logg = logger.OrNop(logg)
	return &Service{
		books: kv.NewShardSet[Address](store, shard.KindAddresses, logg),
		logg:  logg,
		now:   time.Now,
	}
}

// List returns owner's addresses in insertion order.
func (s *Service) List(ctx context.Context, owner shard.Owner) []Address {
	return s.books.LoadOrEmpty(ctx, owner)
}

// Get returns the address id from owner's book.
func (s *Service) Get(ctx context.Context, owner shard.Owner, id string) (Address, bool) {
	for _, a := range s.List(ctx, owner) {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// Add appends draft to owner's book and returns the new id.
func (s *Service) Add(ctx context.Context, owner shard.Owner, draft Draft) (string, error) {
	draft = draft.sanitized()
	if err := validate.Struct(draft); err != nil {
		return "", err
	}
	book, err := s.books.LoadForUpdate(ctx, owner)
	if err != nil {
		return "", err
	}

	addr := Address{
		ID:        s.newID(),
		Name:      draft.Name,
		Phone:     draft.Phone,
		Address:   draft.Address,
		IsDefault: draft.IsDefault,
	}
	if !owner.IsGuest() {
		addr.UserID = owner.String()
	}
	book = append(book, addr)
	if addr.IsDefault {
		clearOtherDefaults(book, addr.ID)
	}
	if err := s.books.Save(ctx, owner, book); err != nil {
		return "", err
	}
	return addr.ID, nil
}

// Update applies patch to address id of owner and returns the stored result.
func (s *Service) Update(ctx context.Context, owner shard.Owner, id string, patch Patch) (Address, error) {
	patch = patch.sanitized()
	if err := validate.Struct(patch); err != nil {
		return Address{}, err
	}
	book, err := s.books.LoadForUpdate(ctx, owner)
	if err != nil {
		return Address{}, err
	}
	idx := slices.IndexFunc(book, func(a Address) bool { return a.ID == id })
	if idx < 0 {
		return Address{}, notFound(id)
	}
	patch.applyTo(&book[idx])
	if book[idx].IsDefault {
		clearOtherDefaults(book, id)
	}
	if err := s.books.Save(ctx, owner, book); err != nil {
		return Address{}, err
	}
	return book[idx], nil
}

// SetDefault marks id as owner's default address.
func (s *Service) SetDefault(ctx context.Context, owner shard.Owner, id string) error {
	isDefault := true
	_, err := s.Update(ctx, owner, id, Patch{IsDefault: &isDefault})
	return err
}

// Delete removes id from owner's book.
func (s *Service) Delete(ctx context.Context, owner shard.Owner, id string) error {
	book, err := s.books.LoadForUpdate(ctx, owner)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(book, func(a Address) bool { return a.ID == id })
	if idx < 0 {
		return notFound(id)
	}
	return s.books.Save(ctx, owner, slices.Delete(book, idx, idx+1))
}

// DefaultOf returns the address flagged default, else the first address.
func (s *Service) DefaultOf(ctx context.Context, owner shard.Owner) (Address, bool) {
	book := s.List(ctx, owner)
	if len(book) == 0 {
		return Address{}, false
	}
	for _, a := range book {
		if a.IsDefault {
			return a, true
		}
	}
	return book[0], true
}

func (s *Service) newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("addr_%d_%s", s.now().UnixMilli(), suffix)
}

func clearOtherDefaults(book []Address, keepID string) {
	for i := range book {
		if book[i].ID != keepID {
			book[i].IsDefault = false
		}
	}
}

func notFound(id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "address not found").
		WithDetails(map[string]string{"address_id": id})
}
