package points

import (
	"context"
	"strings"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/money"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/shopspring/decimal"
)

// Service keeps each user's reward balance as integer text under
// "points_<owner>".
type Service struct {
	store kv.Store
	logg  *logger.Logger
}

func NewService(store kv.Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logger.OrNop(logg)}
}

// Balance returns owner's points. Missing or unreadable balances read as 0.
// Older clients may have written a fractional number; the integer part is
// used.
func (s *Service) Balance(ctx context.Context, owner shard.Owner) int64 {
	if owner.IsGuest() {
		return 0
	}
	balance, err := s.read(ctx, owner)
	if err != nil {
		s.logg.WarnErr(s.logg.WithOwner(ctx, owner.String()), "points balance unreadable", err)
		return 0
	}
	return balance
}

// Credit adds the whole part of amount to owner's balance and returns the new
// balance. Guests cannot earn points.
func (s *Service) Credit(ctx context.Context, owner shard.Owner, amount float64) (int64, error) {
	if owner.IsGuest() {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to earn points")
	}
	if amount < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "points credit must be non-negative")
	}
	ctx = s.logg.WithOwner(ctx, owner.String())

	current, err := s.read(ctx, owner)
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read points balance")
		}
		s.logg.WarnErr(ctx, "resetting corrupt points balance", err)
		current = 0
	}

	next := current + money.Of(amount).IntPart()
	key := shard.Key(shard.KindPoints, owner)
	if err := s.store.Write(ctx, key, decimal.NewFromInt(next).String()); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write points balance")
	}
	s.logg.Info(s.logg.WithField(ctx, "balance", next), "points credited")
	return next, nil
}

// read reports a malformed value as a validation error so callers can tell it
// apart from a backend failure.
func (s *Service) read(ctx context.Context, owner shard.Owner) (int64, error) {
	raw, ok, err := s.store.Read(ctx, shard.Key(shard.KindPoints, owner))
	if err != nil {
		return 0, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed points balance")
	}
	return value.IntPart(), nil
}
