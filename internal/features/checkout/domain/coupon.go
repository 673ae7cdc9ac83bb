package domain

import "errors"

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies a percentage of the subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed applies a fixed KES amount capped at the subtotal.
	DiscountFixed DiscountType = "fixed"
)

var (
	// ErrInvalidDiscountType is returned for an unknown discount type.
	ErrInvalidDiscountType = errors.New("invalid discount type")
	// ErrPercentageOutOfRange is returned when a percentage discount is outside [0, 100].
	ErrPercentageOutOfRange = errors.New("percentage discount must be between 0 and 100")
	// ErrNegativeDiscount is returned when a fixed discount amount is negative.
	ErrNegativeDiscount = errors.New("discount amount must not be negative")
)

// Coupon is a discount descriptor resolved by the store API.
// It is immutable once applied.
type Coupon struct {
	// Code is the coupon code, normalized to uppercase.
	Code string `json:"code"`
	// DiscountType selects percentage or fixed discounting.
	DiscountType DiscountType `json:"discountType"`
	// DiscountAmount is a percentage in [0, 100] or a fixed KES amount.
	DiscountAmount float64 `json:"discountAmount"`
	// MinimumPurchase is the minimum subtotal for the coupon to be active.
	MinimumPurchase float64 `json:"minimumPurchaseAmount"`
	// ApplicableCategoryID optionally restricts the coupon to one category.
	ApplicableCategoryID string `json:"applicableCategoryId,omitempty"`
	// ApplicableProductID optionally restricts the coupon to one product.
	ApplicableProductID string `json:"applicableProductId,omitempty"`
}

// Validate checks the structural invariants of a resolved coupon.
func (c *Coupon) Validate() error {
	switch c.DiscountType {
	case DiscountPercentage:
		if c.DiscountAmount < 0 || c.DiscountAmount > 100 {
			return ErrPercentageOutOfRange
		}
	case DiscountFixed:
		if c.DiscountAmount < 0 {
			return ErrNegativeDiscount
		}
	default:
		return ErrInvalidDiscountType
	}
	return nil
}

// ActiveFor reports whether the coupon is active for the given subtotal.
// An inactive coupon still has its discount computed for display, but
// order submission is blocked while it stays applied.
func (c *Coupon) ActiveFor(subtotal float64) bool {
	return subtotal >= c.MinimumPurchase
}
