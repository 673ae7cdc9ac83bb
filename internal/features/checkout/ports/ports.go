package ports

import (
	"context"

	"arobisca-checkout/internal/features/checkout/domain"
)

// CouponResolver resolves a candidate coupon code against the store API.
// This is a Secondary Port (Driven Port).
type CouponResolver interface {
	// Resolve checks the code against the cart contents and subtotal.
	// A store-side rejection is returned as *domain.CouponRejectedError
	// with the remote message passed through verbatim.
	Resolve(ctx context.Context, code string, productIDs []string, subtotal float64) (*domain.Coupon, error)
}

// OrderSubmitter creates the final order on the store API.
// This is a Secondary Port (Driven Port).
type OrderSubmitter interface {
	// Submit posts the assembled draft and returns the persisted order.
	// A store-side refusal is returned as *domain.OrderRejectedError.
	Submit(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
}
