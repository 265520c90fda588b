package orders

import (
	"time"

	"github.com/angelmondragon/mallkv/internal/address"
	"github.com/angelmondragon/mallkv/internal/cart"
	"github.com/angelmondragon/mallkv/pkg/enums"
	"github.com/angelmondragon/mallkv/pkg/shard"
)

// Order is one placed order in its owner's shard. Items and ShippingAddress
// are copies taken at checkout.
type Order struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Items           []cart.Line       `json:"items"`
	TotalPrice      float64           `json:"totalPrice"`
	OriginalPrice   *float64          `json:"originalPrice,omitempty"`
	CouponDiscount  *float64          `json:"couponDiscount,omitempty"`
	CouponID        string            `json:"couponId,omitempty"`
	Status          enums.OrderStatus `json:"status"`
	CreateTime      time.Time         `json:"createTime"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	ShippingAddress *address.Address  `json:"shippingAddress,omitempty"`
}

// Owner returns the shard the order lives in.
func (o Order) Owner() shard.Owner {
	return shard.OwnerOf(o.UserID)
}

// Quantity is the number of units across all items.
func (o Order) Quantity() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
