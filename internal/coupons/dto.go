package coupons

import "time"

// Coupon is a one-shot discount issued against a specific order amount.
type Coupon struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	DiscountPercent int       `json:"discountPercent"`
	DiscountAmount  float64   `json:"discountAmount"`
	OriginalAmount  float64   `json:"originalAmount"`
	IsUsed          bool      `json:"isUsed"`
	CreatedAt       time.Time `json:"createdAt"`
	OrderID         string    `json:"orderId,omitempty"`
}
