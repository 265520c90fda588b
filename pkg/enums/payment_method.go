package enums

import "fmt"

// PaymentMethod is the settlement channel label recorded on an order.
type PaymentMethod string

const (
	PaymentMethodWeChat PaymentMethod = "微信支付"
	PaymentMethodAlipay PaymentMethod = "支付宝"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodWeChat,
	PaymentMethodAlipay,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
