package checkout

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
)

// LineValidationInput describes the data required to verify a checkout line.
type LineValidationInput struct {
	ProductID   int
	ProductName string
	Quantity    int
	Price       float64
}

// LineViolationDetail exposes the data returned to callers when a validation fails.
type LineViolationDetail struct {
	ProductID    int     `json:"product_id"`
	ProductName  string  `json:"product_name,omitempty"`
	Reason       string  `json:"reason"`
	RequestedQty int     `json:"requested_qty"`
	Price        float64 `json:"price"`
}

const (
	ReasonEmptySelection = "empty_selection"
	ReasonQuantity       = "quantity_below_one"
	ReasonPrice          = "negative_price"
	ReasonProductID      = "missing_product_id"
)

// ValidateLines ensures there is at least one line and every line can be
// priced: a product id, a quantity of at least one and a non-negative price.
func ValidateLines(items []LineValidationInput) error {
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout").WithDetails(map[string]any{
			"reason": ReasonEmptySelection,
		})
	}
	var violations []LineViolationDetail
	for _, item := range items {
		reason := ""
		switch {
		case item.ProductID <= 0:
			reason = ReasonProductID
		case item.Quantity < 1:
			reason = ReasonQuantity
		case item.Price < 0:
			reason = ReasonPrice
		}
		if reason == "" {
			continue
		}
		violations = append(violations, LineViolationDetail{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Reason:       reason,
			RequestedQty: item.Quantity,
			Price:        item.Price,
		})
	}
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid checkout line(s): %d", len(violations))).WithDetails(map[string]any{
		"violations": violations,
	})
}
