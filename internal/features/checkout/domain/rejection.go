package domain

// CouponRejectedError carries the store API's verbatim reason for
// refusing a coupon code (invalid, expired, inapplicable...). The
// taxonomy is owned by the store; the message is surfaced as-is.
type CouponRejectedError struct {
	// Message is the human-readable rejection reason from the store.
	Message string
}

// Error implements the error interface.
func (e *CouponRejectedError) Error() string {
	return e.Message
}

// OrderRejectedError carries the store API's verbatim reason for
// refusing an order submission. The cart is preserved so the user can
// retry.
type OrderRejectedError struct {
	// Message is the human-readable rejection reason from the store.
	Message string
}

// Error implements the error interface.
func (e *OrderRejectedError) Error() string {
	return e.Message
}
