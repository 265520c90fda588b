package orders

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/mallkv/internal/address"
	"github.com/angelmondragon/mallkv/internal/cart"
	"github.com/angelmondragon/mallkv/pkg/enums"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/metrics"
	"github.com/angelmondragon/mallkv/pkg/money"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// DefaultPaymentMethod is recorded when Create is called without one.
const DefaultPaymentMethod = string(enums.PaymentMethodWeChat)

type salesRecorder interface {
	RecordSales(ctx context.Context, sold map[int]int) error
}

// LedgerParams packages the ledger dependencies.
type LedgerParams struct {
	Store kv.Store
	// Sales receives the per-product quantities of every new order.
	Sales                salesRecorder
	DefaultPaymentMethod string
	Metrics              *metrics.OrderMetrics
	Logger               *logger.Logger
	Now                  func() time.Time
}

// Ledger keeps each owner's orders in "orders_<owner>". There is no global
// index: lookups and status updates by id fall back to scanning every
// "orders_" shard, so a write only ever touches the shard holding the order.
//
// Shards assume one writer at a time. Two writers rewriting the same shard
// concurrently resolve last-write-wins.
type Ledger struct {
	shards        *kv.ShardSet[Order]
	sales         salesRecorder
	paymentMethod string
	metrics       *metrics.OrderMetrics
	logg          *logger.Logger
	now           func() time.Time
}

// NewLedger builds the order ledger.
func NewLedger(params LedgerParams) (*Ledger, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	logg := logger.OrNop(params.Logger)
	now := params.Now
	if now == nil {
		now = time.Now
	}
	method := strings.TrimSpace(params.DefaultPaymentMethod)
	if method == "" {
		method = DefaultPaymentMethod
	}
	return &Ledger{
		shards:        kv.NewShardSet[Order](params.Store, shard.KindOrders, logg),
		sales:         params.Sales,
		paymentMethod: method,
		metrics:       params.Metrics,
		logg:          logg,
		now:           now,
	}, nil
}

// Create records an order for owner from lines and returns its id. The lines
// and addr are copied; every copied line is marked selected. After the order
// is stored, each product's sales counter grows by its quantity.
func (l *Ledger) Create(ctx context.Context, owner shard.Owner, lines []cart.Line, paymentMethod string, addr *address.Address) (string, error) {
	orders, err := l.shards.LoadForUpdate(ctx, owner)
	if err != nil {
		return "", err
	}

	items := make([]cart.Line, len(lines))
	copy(items, lines)
	for i := range items {
		items[i].Selected = true
	}
	var shipping *address.Address
	if addr != nil {
		snapshot := *addr
		shipping = &snapshot
	}
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = l.paymentMethod
	}

	now := l.now()
	order := Order{
		ID:              newOrderID(now),
		UserID:          owner.String(),
		Items:           items,
		TotalPrice:      cart.Total(items),
		Status:          enums.OrderStatusAwaitingPayment,
		CreateTime:      now.UTC(),
		PaymentMethod:   paymentMethod,
		ShippingAddress: shipping,
	}
	if err := l.shards.Save(ctx, owner, slices.Insert(orders, 0, order)); err != nil {
		return "", err
	}
	l.metrics.IncCreated()

	ctx = l.logg.WithOrderID(l.logg.WithOwner(ctx, owner.String()), order.ID)
	l.recordSales(ctx, items)
	l.logg.Info(ctx, "order created")
	return order.ID, nil
}

// GetByID looks in caller's shard first, then scans every order shard.
func (l *Ledger) GetByID(ctx context.Context, caller shard.Owner, orderID string) (Order, bool) {
	for _, o := range l.shards.LoadOrEmpty(ctx, caller) {
		if o.ID == orderID {
			return o, true
		}
	}
	_, order, found := l.locate(ctx, orderID)
	return order, found
}

// Locate scans every order shard for orderID and reports the owning shard.
func (l *Ledger) Locate(ctx context.Context, orderID string) (shard.Owner, Order, bool) {
	return l.locate(ctx, orderID)
}

// UpdateStatusGlobally moves orderID to status in whichever shard holds it.
//
// Any known status is accepted; lifecycle ordering is left to callers such as
// the checkout flow. Requesting the current status is a no-op without a
// write, and shards without the order are never rewritten.
func (l *Ledger) UpdateStatusGlobally(ctx context.Context, orderID string, status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": status.String()})
	}
	ctx = l.logg.WithOrderID(ctx, orderID)

	hits, scanErr := l.scan(ctx, orderID)
	if len(hits) == 0 {
		if scanErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, scanErr, "scan order shards")
		}
		return orderNotFound(orderID)
	}
	if scanErr != nil {
		l.logg.WarnErr(ctx, "some order shards unreadable during update", scanErr)
	}

	var errs error
	written := 0
	for _, hit := range hits {
		if hit.orders[hit.index].Status == status {
			continue
		}
		hit.orders[hit.index].Status = status
		if err := l.shards.Save(ctx, hit.owner, hit.orders); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written++
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, errs, "update order status")
	}
	if written > 0 {
		l.metrics.IncStatusChange(status.Name())
		l.logg.Info(l.logg.WithField(ctx, "status", status.Name()), "order status updated")
	}
	return nil
}

// ApplyCoupon records a redeemed coupon on an order awaiting payment in
// owner's shard. The payable total becomes max(0, total − discount) and the
// pre-discount total is kept in OriginalPrice.
func (l *Ledger) ApplyCoupon(ctx context.Context, owner shard.Owner, orderID, couponID string, discount float64) (Order, error) {
	if discount < 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "discount must be non-negative")
	}
	orders, err := l.shards.LoadForUpdate(ctx, owner)
	if err != nil {
		return Order{}, err
	}
	idx := slices.IndexFunc(orders, func(o Order) bool { return o.ID == orderID })
	if idx < 0 {
		return Order{}, orderNotFound(orderID)
	}
	order := &orders[idx]
	if order.Status != enums.OrderStatusAwaitingPayment {
		return Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "coupon can only be applied before payment")
	}
	if order.CouponID != "" {
		return Order{}, pkgerrors.New(pkgerrors.CodeConflict, "order already has a coupon")
	}

	original := order.TotalPrice
	order.OriginalPrice = &original
	order.CouponDiscount = &discount
	order.CouponID = couponID
	order.TotalPrice = money.Payable(original, discount)
	if err := l.shards.Save(ctx, owner, orders); err != nil {
		return Order{}, err
	}
	return *order, nil
}

// ListForUser returns owner's orders, newest first.
func (l *Ledger) ListForUser(ctx context.Context, owner shard.Owner) []Order {
	return l.shards.LoadOrEmpty(ctx, owner)
}

// CountFor returns the size of owner's shard.
func (l *Ledger) CountFor(ctx context.Context, owner shard.Owner) int {
	return len(l.ListForUser(ctx, owner))
}

// ListAll materialises every shard, newest first. Unreadable shards are
// logged and skipped.
func (l *Ledger) ListAll(ctx context.Context) []Order {
	owners, err := l.shards.Owners(ctx)
	if err != nil {
		l.logg.WarnErr(ctx, "listing order shards failed", err)
		return []Order{}
	}
	l.metrics.ObserveGlobalScan(len(owners))

	all := make([]Order, 0)
	for _, owner := range owners {
		all = append(all, l.shards.LoadOrEmpty(ctx, owner)...)
	}
	slices.SortStableFunc(all, func(a, b Order) int {
		return b.CreateTime.Compare(a.CreateTime)
	})
	return all
}

type shardHit struct {
	owner  shard.Owner
	orders []Order
	index  int
}

// scan returns every shard holding orderID. Shards that fail to load are
// skipped and reported through the combined error.
func (l *Ledger) scan(ctx context.Context, orderID string) ([]shardHit, error) {
	owners, err := l.shards.Owners(ctx)
	if err != nil {
		return nil, err
	}
	l.metrics.ObserveGlobalScan(len(owners))

	var (
		hits []shardHit
		errs error
	)
	for _, owner := range owners {
		orders, err := l.shards.Load(ctx, owner)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shard %s: %w", owner, err))
			continue
		}
		if idx := slices.IndexFunc(orders, func(o Order) bool { return o.ID == orderID }); idx >= 0 {
			hits = append(hits, shardHit{owner: owner, orders: orders, index: idx})
		}
	}
	return hits, errs
}

func (l *Ledger) locate(ctx context.Context, orderID string) (shard.Owner, Order, bool) {
	hits, err := l.scan(ctx, orderID)
	if err != nil {
		l.logg.WarnErr(l.logg.WithOrderID(ctx, orderID), "order scan incomplete", err)
	}
	if len(hits) == 0 {
		return "", Order{}, false
	}
	hit := hits[0]
	return hit.owner, hit.orders[hit.index], true
}

// recordSales is best effort: the order already exists, so a failure is
// logged rather than returned.
func (l *Ledger) recordSales(ctx context.Context, items []cart.Line) {
	if l.sales == nil || len(items) == 0 {
		return
	}
	sold := make(map[int]int, len(items))
	for _, item := range items {
		sold[item.ID] += item.Quantity
	}
	if err := l.sales.RecordSales(ctx, sold); err != nil {
		l.logg.WarnErr(ctx, "sales counter update failed", err)
	}
}

func newOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suffix)
}

func orderNotFound(orderID string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
		WithDetails(map[string]string{"order_id": orderID})
}
