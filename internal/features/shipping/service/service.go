package service

import (
	"context"
	"errors"
	"fmt"

	checkoutdomain "arobisca-checkout/internal/features/checkout/domain"
	"arobisca-checkout/internal/features/shipping/domain"
	"arobisca-checkout/internal/features/shipping/ports"
)

// ErrMethodNotFound is returned when the shipping method ID is unknown.
var ErrMethodNotFound = errors.New("shipping method not found")

// CODForcedNotice is the user-facing notice emitted when cash on
// delivery is not available for the selected destination and the
// payment method is switched back to M-Pesa.
const CODForcedNotice = "Cash on delivery is not available for this destination. Payment method switched to M-Pesa."

// ShippingService lists shipping destinations and enforces the COD gate.
type ShippingService struct {
	// provider is the fee table source (usually the cached store adapter).
	provider ports.FeeProvider
}

// NewShippingService creates a new ShippingService.
func NewShippingService(provider ports.FeeProvider) *ShippingService {
	return &ShippingService{
		provider: provider,
	}
}

// List returns all shipping methods.
func (s *ShippingService) List(ctx context.Context) ([]domain.Method, error) {
	methods, err := s.provider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipping methods: %w", err)
	}
	return methods, nil
}

// Method returns the shipping method with the given ID.
func (s *ShippingService) Method(ctx context.Context, id string) (*domain.Method, error) {
	methods, err := s.provider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipping methods: %w", err)
	}

	for _, m := range methods {
		if m.ID == id {
			return &m, nil
		}
	}

	return nil, ErrMethodNotFound
}

// GateCOD applies the COD availability rule for a shipping selection.
// When the chosen method does not offer cash on delivery and the payment
// method is COD, the payment method is forced back to M-Pesa and a
// user-facing notice is returned. The rule runs on every selection
// change, not just at submit time.
func (s *ShippingService) GateCOD(method *domain.Method, payment checkoutdomain.PaymentMethod) (checkoutdomain.PaymentMethod, string) {
	if payment == checkoutdomain.PaymentMethodCOD && (method == nil || !method.CODAvailable) {
		return checkoutdomain.PaymentMethodMpesa, CODForcedNotice
	}
	return payment, ""
}
