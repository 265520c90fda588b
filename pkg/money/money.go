// Package money does price arithmetic in decimal and hands results back as the
// float64 amounts stored in the JSON records.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Of converts a stored amount to a decimal.
func Of(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

// Amount converts d back to a stored amount rounded to cents.
func Amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Line returns price × quantity.
func Line(price float64, quantity int) decimal.Decimal {
	return Of(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// PercentFloor returns floor(amount × percent / 100).
func PercentFloor(amount float64, percent int) float64 {
	return Of(amount).Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Floor().InexactFloat64()
}

// Payable returns max(0, total − discount).
func Payable(total, discount float64) float64 {
	out := Of(total).Sub(Of(discount))
	if out.IsNegative() {
		return 0
	}
	return Amount(out)
}

// Sum adds stored amounts.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(Of(amount))
	}
	return Amount(total)
}
