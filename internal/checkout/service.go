package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/mallkv/internal/address"
	"github.com/angelmondragon/mallkv/internal/cart"
	"github.com/angelmondragon/mallkv/internal/coupons"
	"github.com/angelmondragon/mallkv/internal/orders"
	pkgcheckout "github.com/angelmondragon/mallkv/pkg/checkout"
	"github.com/angelmondragon/mallkv/pkg/enums"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/money"
	"github.com/angelmondragon/mallkv/pkg/shard"
)

type cartStore interface {
	Selected(ctx context.Context, owner shard.Owner) []cart.Line
	ClearSelected(ctx context.Context, owner shard.Owner) error
}

type addressBook interface {
	Get(ctx context.Context, owner shard.Owner, id string) (address.Address, bool)
	DefaultOf(ctx context.Context, owner shard.Owner) (address.Address, bool)
}

type orderLedger interface {
	Create(ctx context.Context, owner shard.Owner, lines []cart.Line, paymentMethod string, addr *address.Address) (string, error)
	GetByID(ctx context.Context, caller shard.Owner, orderID string) (orders.Order, bool)
	Locate(ctx context.Context, orderID string) (shard.Owner, orders.Order, bool)
	ApplyCoupon(ctx context.Context, owner shard.Owner, orderID, couponID string, discount float64) (orders.Order, error)
	UpdateStatusGlobally(ctx context.Context, orderID string, status enums.OrderStatus) error
}

type couponIssuer interface {
	Generate(ctx context.Context, owner shard.Owner, orderAmount float64) (coupons.Coupon, error)
	Redeem(ctx context.Context, owner shard.Owner, couponID, orderID string) (coupons.Coupon, bool, error)
}

type pointsCreditor interface {
	Credit(ctx context.Context, owner shard.Owner, amount float64) (int64, error)
}

// ServiceParams packages the collaborators of the checkout flow.
type ServiceParams struct {
	Cart      cartStore
	Addresses addressBook
	Ledger    orderLedger
	Coupons   couponIssuer
	Points    pointsCreditor
	Logger    *logger.Logger
}

// Service drives an order from the cart through payment, shipment and
// receipt.
type Service struct {
	cart      cartStore
	addresses addressBook
	ledger    orderLedger
	coupons   couponIssuer
	points    pointsCreditor
	logg      *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address book required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("order ledger required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon service required")
	}
	if params.Points == nil {
		return nil, fmt.Errorf("points service required")
	}
	return &Service{
		cart:      params.Cart,
		addresses: params.Addresses,
		ledger:    params.Ledger,
		coupons:   params.Coupons,
		points:    params.Points,
		logg:      logger.OrNop(params.Logger),
	}, nil
}

// PlaceOrderInput selects how the order is settled and shipped. An empty
// PaymentMethod uses the ledger default; an empty AddressID uses the owner's
// default address.
type PlaceOrderInput struct {
	PaymentMethod string
	AddressID     string
}

// PlaceOrder turns owner's selected cart lines into an order awaiting
// payment, then removes those lines from the cart.
func (s *Service) PlaceOrder(ctx context.Context, owner shard.Owner, input PlaceOrderInput) (orders.Order, error) {
	ctx = s.logg.WithOwner(ctx, owner.String())

	method := strings.TrimSpace(input.PaymentMethod)
	if method != "" {
		parsed, err := enums.ParsePaymentMethod(method)
		if err != nil {
			return orders.Order{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported payment method")
		}
		method = parsed.String()
	}

	lines := s.cart.Selected(ctx, owner)
	if err := pkgcheckout.ValidateLines(validationInputs(lines)); err != nil {
		return orders.Order{}, err
	}

	addr, err := s.shippingAddress(ctx, owner, input.AddressID)
	if err != nil {
		return orders.Order{}, err
	}

	orderID, err := s.ledger.Create(ctx, owner, lines, method, &addr)
	if err != nil {
		return orders.Order{}, err
	}
	if err := s.cart.ClearSelected(ctx, owner); err != nil {
		s.logg.WarnErr(s.logg.WithOrderID(ctx, orderID), "clearing checked-out cart lines failed", err)
	}

	order, ok := s.ledger.GetByID(ctx, owner, orderID)
	if !ok {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeStorage, "order not readable after create")
	}
	return order, nil
}

// OfferCoupon issues a coupon sized to an order that is still awaiting
// payment.
func (s *Service) OfferCoupon(ctx context.Context, owner shard.Owner, orderID string) (coupons.Coupon, error) {
	order, err := s.ownedOrder(ctx, owner, orderID)
	if err != nil {
		return coupons.Coupon{}, err
	}
	if order.Status != enums.OrderStatusAwaitingPayment {
		return coupons.Coupon{}, stateConflict(order.Status, enums.OrderStatusAwaitingPayment)
	}
	return s.coupons.Generate(ctx, owner, order.TotalPrice)
}

// Pay settles an order awaiting payment. When couponID is set the coupon is
// redeemed first and its discount recorded on the order; the order then moves
// to awaiting shipment.
func (s *Service) Pay(ctx context.Context, owner shard.Owner, orderID, couponID string) (orders.Order, error) {
	ctx = s.logg.WithOrderID(s.logg.WithOwner(ctx, owner.String()), orderID)

	order, err := s.ownedOrder(ctx, owner, orderID)
	if err != nil {
		return orders.Order{}, err
	}
	if order.Status != enums.OrderStatusAwaitingPayment {
		return orders.Order{}, stateConflict(order.Status, enums.OrderStatusAwaitingShipment)
	}

	if couponID = strings.TrimSpace(couponID); couponID != "" {
		if order.CouponID != "" {
			return orders.Order{}, pkgerrors.New(pkgerrors.CodeConflict, "order already has a coupon")
		}
		coupon, redeemed, err := s.coupons.Redeem(ctx, owner, couponID, orderID)
		if err != nil {
			return orders.Order{}, err
		}
		if !redeemed {
			return orders.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not available").
				WithDetails(map[string]string{"coupon_id": couponID})
		}
		if order, err = s.ledger.ApplyCoupon(ctx, owner, orderID, coupon.ID, coupon.DiscountAmount); err != nil {
			return orders.Order{}, err
		}
	}

	if err := s.ledger.UpdateStatusGlobally(ctx, orderID, enums.OrderStatusAwaitingShipment); err != nil {
		return orders.Order{}, err
	}
	order.Status = enums.OrderStatusAwaitingShipment
	s.logg.Info(ctx, "order paid")
	return order, nil
}

// Ship is the vendor action moving a paid order to shipped, whichever shard
// holds it. Shipping an order twice is a no-op.
func (s *Service) Ship(ctx context.Context, orderID string) error {
	_, order, ok := s.ledger.Locate(ctx, orderID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]string{"order_id": orderID})
	}
	if !order.Status.CanTransitionTo(enums.OrderStatusShipped) {
		return stateConflict(order.Status, enums.OrderStatusShipped)
	}
	return s.ledger.UpdateStatusGlobally(ctx, orderID, enums.OrderStatusShipped)
}

// ConfirmReceipt completes a shipped order and credits the buyer one point
// per whole unit of the order total. Guests complete without points.
func (s *Service) ConfirmReceipt(ctx context.Context, owner shard.Owner, orderID string) (orders.Order, int64, error) {
	ctx = s.logg.WithOrderID(s.logg.WithOwner(ctx, owner.String()), orderID)

	order, err := s.ownedOrder(ctx, owner, orderID)
	if err != nil {
		return orders.Order{}, 0, err
	}
	if order.Status != enums.OrderStatusShipped {
		return orders.Order{}, 0, stateConflict(order.Status, enums.OrderStatusCompleted)
	}
	if err := s.ledger.UpdateStatusGlobally(ctx, orderID, enums.OrderStatusCompleted); err != nil {
		return orders.Order{}, 0, err
	}
	order.Status = enums.OrderStatusCompleted

	if owner.IsGuest() {
		return order, 0, nil
	}
	balance, err := s.points.Credit(ctx, owner, order.TotalPrice)
	if err != nil {
		return order, 0, err
	}
	return order, balance, nil
}

// FinalPayable is max(0, total − discount).
func FinalPayable(total, discount float64) float64 {
	return money.Payable(total, discount)
}

func (s *Service) shippingAddress(ctx context.Context, owner shard.Owner, addressID string) (address.Address, error) {
	if id := strings.TrimSpace(addressID); id != "" {
		addr, ok := s.addresses.Get(ctx, owner, id)
		if !ok {
			return address.Address{}, pkgerrors.New(pkgerrors.CodeNotFound, "address not found").
				WithDetails(map[string]string{"address_id": id})
		}
		return addr, nil
	}
	addr, ok := s.addresses.DefaultOf(ctx, owner)
	if !ok {
		return address.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping address required")
	}
	return addr, nil
}

// ownedOrder hides orders of other owners behind NOT_FOUND.
func (s *Service) ownedOrder(ctx context.Context, owner shard.Owner, orderID string) (orders.Order, error) {
	order, ok := s.ledger.GetByID(ctx, owner, orderID)
	if !ok || order.Owner() != shard.OwnerOf(owner.String()) {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]string{"order_id": orderID})
	}
	return order, nil
}

func validationInputs(lines []cart.Line) []pkgcheckout.LineValidationInput {
	inputs := make([]pkgcheckout.LineValidationInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, pkgcheckout.LineValidationInput{
			ProductID:   line.ID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	return inputs
}

func stateConflict(from, to enums.OrderStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition not allowed").
		WithDetails(map[string]string{"from": from.String(), "to": to.String()})
}
