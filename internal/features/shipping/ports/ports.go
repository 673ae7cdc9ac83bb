package ports

import (
	"context"

	"arobisca-checkout/internal/features/shipping/domain"
)

// FeeProvider lists the shipping destinations offered by the store.
// This is a Secondary Port (Driven Port).
type FeeProvider interface {
	// List returns all shipping methods with fees and COD eligibility.
	List(ctx context.Context) ([]domain.Method, error)
}
