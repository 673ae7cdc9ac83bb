package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 {
	return &v
}

// TestCartItem_EffectiveUnitPrice verifies the discounted price is preferred.
func TestCartItem_EffectiveUnitPrice(t *testing.T) {
	regular := CartItem{ID: "p1", UnitPrice: 500, Quantity: 1}
	assert.Equal(t, 500.0, regular.EffectiveUnitPrice())

	promo := CartItem{ID: "p2", UnitPrice: 500, DiscountedUnitPrice: floatPtr(450), Quantity: 1}
	assert.Equal(t, 450.0, promo.EffectiveUnitPrice())
}

// TestCalculateTotals_NoCoupon covers a plain cart with shipping.
func TestCalculateTotals_NoCoupon(t *testing.T) {
	items := []CartItem{
		{ID: "p1", UnitPrice: 250, Quantity: 2},
		{ID: "p2", UnitPrice: 500, Quantity: 1},
	}

	totals := CalculateTotals(items, nil, 200)

	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 200.0, totals.Shipping)
	assert.Equal(t, 1200.0, totals.Total)
}

// TestCalculateTotals_PercentageCoupon covers a 10% coupon on KES 1,000.
func TestCalculateTotals_PercentageCoupon(t *testing.T) {
	items := []CartItem{{ID: "p1", UnitPrice: 1000, Quantity: 1}}
	coupon := &Coupon{Code: "SAVE10", DiscountType: DiscountPercentage, DiscountAmount: 10}

	totals := CalculateTotals(items, coupon, 200)

	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 100.0, totals.Discount)
	assert.Equal(t, 1100.0, totals.Total)
}

// TestCalculateTotals_FixedCouponClamped verifies a fixed discount larger
// than the subtotal is clamped so the total never goes negative.
func TestCalculateTotals_FixedCouponClamped(t *testing.T) {
	items := []CartItem{{ID: "p1", UnitPrice: 500, Quantity: 1}}
	coupon := &Coupon{Code: "BIG", DiscountType: DiscountFixed, DiscountAmount: 800}

	totals := CalculateTotals(items, coupon, 0)

	assert.Equal(t, 500.0, totals.Subtotal)
	assert.Equal(t, 500.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Total)
}

// TestCalculateTotals_DiscountedUnitPrice verifies the promo price feeds the subtotal.
func TestCalculateTotals_DiscountedUnitPrice(t *testing.T) {
	items := []CartItem{
		{ID: "p1", UnitPrice: 600, DiscountedUnitPrice: floatPtr(450), Quantity: 2},
	}

	totals := CalculateTotals(items, nil, 0)

	assert.Equal(t, 900.0, totals.Subtotal)
	assert.Equal(t, 900.0, totals.Total)
}

// TestCalculateTotals_Deterministic verifies repeated calls yield identical results.
func TestCalculateTotals_Deterministic(t *testing.T) {
	items := []CartItem{
		{ID: "p1", UnitPrice: 333.33, Quantity: 3},
		{ID: "p2", UnitPrice: 125.5, DiscountedUnitPrice: floatPtr(99.9), Quantity: 2},
	}
	coupon := &Coupon{Code: "SAVE7", DiscountType: DiscountPercentage, DiscountAmount: 7.5}

	first := CalculateTotals(items, coupon, 150)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateTotals(items, coupon, 150))
	}
}

// TestCalculateTotals_ExactDecimalMath verifies percentage math avoids
// binary float drift (e.g., 10% of 1199.7).
func TestCalculateTotals_ExactDecimalMath(t *testing.T) {
	items := []CartItem{{ID: "p1", UnitPrice: 399.9, Quantity: 3}}
	coupon := &Coupon{Code: "TEN", DiscountType: DiscountPercentage, DiscountAmount: 10}

	totals := CalculateTotals(items, coupon, 0)

	assert.Equal(t, 1199.7, totals.Subtotal)
	assert.Equal(t, 119.97, totals.Discount)
	assert.Equal(t, 1079.73, totals.Total)
}

// TestCalculateTotals_EmptyCart verifies an empty cart totals to shipping only.
func TestCalculateTotals_EmptyCart(t *testing.T) {
	totals := CalculateTotals(nil, nil, 200)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 200.0, totals.Total)
}

// TestCalculateTotals_NegativeFixedDiscountIgnored verifies a negative
// discount amount never increases the total.
func TestCalculateTotals_NegativeFixedDiscountIgnored(t *testing.T) {
	items := []CartItem{{ID: "p1", UnitPrice: 100, Quantity: 1}}
	coupon := &Coupon{Code: "WEIRD", DiscountType: DiscountFixed, DiscountAmount: -50}

	totals := CalculateTotals(items, coupon, 0)

	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 100.0, totals.Total)
}
