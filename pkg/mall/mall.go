// Package mall composes the storefront data layer: one key-value backend and
// every service that reads or writes it.
package mall

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/mallkv/internal/address"
	"github.com/angelmondragon/mallkv/internal/assistant"
	"github.com/angelmondragon/mallkv/internal/cart"
	"github.com/angelmondragon/mallkv/internal/checkout"
	"github.com/angelmondragon/mallkv/internal/coupons"
	"github.com/angelmondragon/mallkv/internal/dashboard"
	"github.com/angelmondragon/mallkv/internal/orders"
	"github.com/angelmondragon/mallkv/internal/points"
	product "github.com/angelmondragon/mallkv/internal/products"
	"github.com/angelmondragon/mallkv/internal/users"
	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/metrics"
	"github.com/angelmondragon/mallkv/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// Options carries the ambient collaborators. Every field is optional.
type Options struct {
	Logger *logger.Logger
	// Registerer receives the storage and ledger metrics; nil disables them.
	Registerer prometheus.Registerer
	// CouponSource overrides the coupon percent draw.
	CouponSource coupons.Source
	Now          func() time.Time
}

// Mall is the composition root handed to the presentation layer.
type Mall struct {
	Catalog   *product.Service
	Users     *users.Service
	Addresses *address.Service
	Cart      *cart.Service
	Coupons   *coupons.Service
	Ledger    *orders.Ledger
	Points    *points.Service
	Checkout  *checkout.Service
	Dashboard *dashboard.Service
	Assistant *assistant.Builder

	store  kv.Store
	handle *kv.Handle
	logg   *logger.Logger
}

// Open connects the backend named in cfg and wires the services over it.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Mall, error) {
	handle, err := kv.Open(ctx, cfg, opts.Logger, metrics.NewStorageMetrics(opts.Registerer))
	if err != nil {
		return nil, err
	}
	m, err := New(handle.Store, cfg, opts)
	if err != nil {
		_ = handle.Close()
		return nil, err
	}
	m.handle = handle
	return m, nil
}

// New wires the services over an already opened store.
func New(store kv.Store, cfg *config.Config, opts Options) (*Mall, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	logg := logger.OrNop(opts.Logger)

	catalog := product.NewService(store, logg)
	ledger, err := orders.NewLedger(orders.LedgerParams{
		Store:                store,
		Sales:                catalog,
		DefaultPaymentMethod: cfg.Orders.DefaultPaymentMethod,
		Metrics:              metrics.NewOrderMetrics(opts.Registerer),
		Logger:               logg,
		Now:                  opts.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("order ledger: %w", err)
	}
	directory, err := users.NewService(users.ServiceParams{
		Store:  store,
		Hasher: security.NewHasher(cfg.Password),
		Seed:   cfg.Seed,
		Orders: ledger,
		Logger: logg,
		Now:    opts.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("user directory: %w", err)
	}
	couponSvc, err := coupons.NewService(coupons.ServiceParams{
		Store:  store,
		Config: cfg.Coupon,
		Source: opts.CouponSource,
		Logger: logg,
		Now:    opts.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("coupons: %w", err)
	}

	m := &Mall{
		Catalog:   catalog,
		Users:     directory,
		Addresses: address.NewService(store, logg),
		Cart:      cart.NewService(store, logg),
		Coupons:   couponSvc,
		Ledger:    ledger,
		Points:    points.NewService(store, logg),
		store:     store,
		logg:      logg,
	}
	m.Checkout, err = checkout.NewService(checkout.ServiceParams{
		Cart:      m.Cart,
		Addresses: m.Addresses,
		Ledger:    m.Ledger,
		Coupons:   m.Coupons,
		Points:    m.Points,
		Logger:    logg,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	m.Dashboard = dashboard.NewService(ledger, catalog, directory, cfg.Orders.RecentWindow, logg)
	m.Assistant = assistant.NewBuilder(catalog, ledger, logg)
	return m, nil
}

// SeedReport tells which first-run records were written.
type SeedReport struct {
	CatalogSeeded bool
	AdminSeeded   bool
}

// Seed writes the default catalog and the admin account when they are
// missing. Both are attempted even if one fails.
func (m *Mall) Seed(ctx context.Context) (SeedReport, error) {
	var (
		report SeedReport
		errs   []error
		err    error
	)
	if report.CatalogSeeded, err = m.Catalog.Seed(ctx); err != nil {
		errs = append(errs, fmt.Errorf("seed catalog: %w", err))
	}
	if report.AdminSeeded, err = m.Users.Seed(ctx); err != nil {
		errs = append(errs, fmt.Errorf("seed admin: %w", err))
	}
	return report, multierr.Combine(errs...)
}

// Store returns the backing key-value store.
func (m *Mall) Store() kv.Store {
	return m.store
}

// Close releases the backend opened by Open. Malls built with New own no
// connections.
func (m *Mall) Close() error {
	return m.handle.Close()
}
