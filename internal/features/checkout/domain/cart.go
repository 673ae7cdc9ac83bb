package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod identifies how the customer settles the order.
type PaymentMethod string

const (
	// PaymentMethodMpesa settles the order online via an M-Pesa STK push.
	PaymentMethodMpesa PaymentMethod = "mpesa"
	// PaymentMethodCOD settles the order in cash at delivery time.
	PaymentMethodCOD PaymentMethod = "cod"
)

// CartItem represents a single line in the customer's cart.
type CartItem struct {
	// ID is the product identifier.
	ID string `json:"id"`
	// UnitPrice is the regular price per unit in KES.
	UnitPrice float64 `json:"unitPrice"`
	// DiscountedUnitPrice is an optional promotional price per unit.
	DiscountedUnitPrice *float64 `json:"discountedUnitPrice,omitempty"`
	// Quantity is the number of units in the cart.
	Quantity int `json:"quantity"`
}

// EffectiveUnitPrice returns the discounted unit price when present,
// otherwise the regular unit price.
func (i CartItem) EffectiveUnitPrice() float64 {
	if i.DiscountedUnitPrice != nil {
		return *i.DiscountedUnitPrice
	}
	return i.UnitPrice
}

// Totals is the computed monetary breakdown for a cart.
type Totals struct {
	// Subtotal is the sum of effective unit prices times quantities.
	Subtotal float64 `json:"subtotal"`
	// Discount is the coupon discount, clamped to the subtotal.
	Discount float64 `json:"discount"`
	// Shipping is the fee of the selected shipping method.
	Shipping float64 `json:"shipping"`
	// Total is (subtotal - discount) + shipping.
	Total float64 `json:"total"`
}

// CalculateTotals computes the cart totals for the given items, optional
// coupon and shipping fee. It is a pure function: same inputs always
// produce the same breakdown. The discount is clamped so that the
// pre-shipping total never goes negative.
func CalculateTotals(items []CartItem, coupon *Coupon, shipping float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.EffectiveUnitPrice())
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(price.Mul(qty))
	}

	discount := decimal.Zero
	if coupon != nil {
		switch coupon.DiscountType {
		case DiscountPercentage:
			discount = subtotal.Mul(decimal.NewFromFloat(coupon.DiscountAmount)).Div(decimal.NewFromInt(100))
		case DiscountFixed:
			discount = decimal.NewFromFloat(coupon.DiscountAmount)
		}

		if discount.IsNegative() {
			discount = decimal.Zero
		}
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	fee := decimal.NewFromFloat(shipping)
	total := subtotal.Sub(discount).Add(fee)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Shipping: fee.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
