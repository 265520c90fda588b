package coupons

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/mallkv/pkg/config"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/money"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/google/uuid"
)

// Source draws the discount percent. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// ServiceParams packages the coupon engine dependencies.
type ServiceParams struct {
	Store  kv.Store
	Config config.CouponConfig
	Source Source
	Logger *logger.Logger
	Now    func() time.Time
}

// Service issues and redeems coupons ("coupons_<owner>"). It places no limit
// on how often Generate is called; callers decide when a coupon is offered.
type Service struct {
	wallets    *kv.ShardSet[Coupon]
	minPercent int
	maxPercent int
	source     Source
	logg       *logger.Logger
	now        func() time.Time
}

// NewService builds the coupon engine. A zero percent range falls back to 3–15.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	lo, hi := params.Config.MinPercent, params.Config.MaxPercent
	if lo == 0 && hi == 0 {
		lo, hi = 3, 15
	}
	if lo < 0 || hi > 100 || lo > hi {
		return nil, fmt.Errorf("invalid coupon percent range [%d, %d]", lo, hi)
	}
	source := params.Source
	if source == nil {
		source = globalSource{}
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	logg := logger.OrNop(params.Logger)
	return &Service{
		wallets:    kv.NewShardSet[Coupon](params.Store, shard.KindCoupons, logg),
		minPercent: lo,
		maxPercent: hi,
		source:     source,
		logg:       logg,
		now:        now,
	}, nil
}

// Generate issues a coupon for orderAmount with a percent drawn uniformly from
// the configured range. The discount is floor(orderAmount × percent / 100).
// The coupon is placed first in owner's list.
func (s *Service) Generate(ctx context.Context, owner shard.Owner, orderAmount float64) (Coupon, error) {
	if orderAmount < 0 {
		return Coupon{}, pkgerrors.New(pkgerrors.CodeValidation, "order amount must be non-negative")
	}
	wallet, err := s.wallets.LoadForUpdate(ctx, owner)
	if err != nil {
		return Coupon{}, err
	}

	percent := s.minPercent + s.source.IntN(s.maxPercent-s.minPercent+1)
	now := s.now()
	coupon := Coupon{
		ID:              newCouponID(now),
		UserID:          owner.String(),
		DiscountPercent: percent,
		DiscountAmount:  money.PercentFloor(orderAmount, percent),
		OriginalAmount:  orderAmount,
		CreatedAt:       now.UTC(),
	}
	if err := s.wallets.Save(ctx, owner, slices.Insert(wallet, 0, coupon)); err != nil {
		return Coupon{}, err
	}

	ctx = s.logg.WithFields(s.logg.WithOwner(ctx, owner.String()), map[string]any{
		"coupon_id": coupon.ID,
		"percent":   percent,
	})
	s.logg.Info(ctx, "coupon generated")
	return coupon, nil
}

// Redeem marks couponID as used for orderID. A coupon that is missing or
// already used is left untouched and reported absent.
func (s *Service) Redeem(ctx context.Context, owner shard.Owner, couponID, orderID string) (Coupon, bool, error) {
	wallet, err := s.wallets.LoadForUpdate(ctx, owner)
	if err != nil {
		return Coupon{}, false, err
	}
	idx := slices.IndexFunc(wallet, func(c Coupon) bool { return c.ID == couponID })
	if idx < 0 || wallet[idx].IsUsed {
		return Coupon{}, false, nil
	}
	wallet[idx].IsUsed = true
	wallet[idx].OrderID = orderID
	if err := s.wallets.Save(ctx, owner, wallet); err != nil {
		return Coupon{}, false, err
	}
	return wallet[idx], true, nil
}

// List returns owner's coupons, newest first.
func (s *Service) List(ctx context.Context, owner shard.Owner) []Coupon {
	return s.wallets.LoadOrEmpty(ctx, owner)
}

// Get returns couponID from owner's list.
func (s *Service) Get(ctx context.Context, owner shard.Owner, couponID string) (Coupon, bool) {
	for _, c := range s.List(ctx, owner) {
		if c.ID == couponID {
			return c, true
		}
	}
	return Coupon{}, false
}

// Available returns owner's unused coupons.
func (s *Service) Available(ctx context.Context, owner shard.Owner) []Coupon {
	return filter(s.List(ctx, owner), false)
}

// Used returns owner's redeemed coupons.
func (s *Service) Used(ctx context.Context, owner shard.Owner) []Coupon {
	return filter(s.List(ctx, owner), true)
}

func filter(wallet []Coupon, used bool) []Coupon {
	out := make([]Coupon, 0, len(wallet))
	for _, c := range wallet {
		if c.IsUsed == used {
			out = append(out, c)
		}
	}
	return out
}

func newCouponID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("coupon_%d_%s", now.UnixMilli(), suffix)
}
