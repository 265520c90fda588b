package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order. The persisted values are the
// display labels the storefront has always written.
type OrderStatus string

const (
	OrderStatusAwaitingPayment  OrderStatus = "待支付"
	OrderStatusAwaitingShipment OrderStatus = "待发货"
	OrderStatusShipped          OrderStatus = "已发货"
	OrderStatusCompleted        OrderStatus = "已完成"
)

// orderStatusFlow is the forward-only lifecycle; each status may only move to
// the one after it.
var orderStatusFlow = []OrderStatus{
	OrderStatusAwaitingPayment,
	OrderStatusAwaitingShipment,
	OrderStatusShipped,
	OrderStatusCompleted,
}

var orderStatusNames = map[OrderStatus]string{
	OrderStatusAwaitingPayment:  "awaiting_payment",
	OrderStatusAwaitingShipment: "awaiting_shipment",
	OrderStatusShipped:          "shipped",
	OrderStatusCompleted:        "completed",
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// Name returns the ASCII identifier used in logs and metrics labels.
func (o OrderStatus) Name() string {
	if name, ok := orderStatusNames[o]; ok {
		return name
	}
	return "unknown"
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	_, ok := orderStatusNames[o]
	return ok
}

// Next returns the status that follows o, or false when o is terminal or unknown.
func (o OrderStatus) Next() (OrderStatus, bool) {
	for i, candidate := range orderStatusFlow {
		if candidate == o && i+1 < len(orderStatusFlow) {
			return orderStatusFlow[i+1], true
		}
	}
	return "", false
}

// CanTransitionTo reports whether moving from o to target is allowed. Staying
// in the same status is allowed so repeated updates are no-ops.
func (o OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !o.IsValid() || !target.IsValid() {
		return false
	}
	if o == target {
		return true
	}
	next, ok := o.Next()
	return ok && next == target
}

// OrderStatuses returns the lifecycle in order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusFlow))
	copy(out, orderStatusFlow)
	return out
}

// ParseOrderStatus accepts either the stored label or its ASCII name.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for status, name := range orderStatusNames {
		if string(status) == value || name == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
