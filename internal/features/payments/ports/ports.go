package ports

import (
	"context"

	"arobisca-checkout/internal/features/payments/domain"
)

// Gateway drives the M-Pesa payment gateway.
// This is a Secondary Port (Driven Port).
type Gateway interface {
	// InitiateSTK sends a payment prompt to the phone and returns the
	// opaque checkout request identifier correlating the confirmation.
	InitiateSTK(ctx context.Context, phone string, amount float64) (string, error)

	// QueryStatus polls the gateway for the attempt's outcome. A
	// non-terminal outcome state means the attempt is still pending.
	QueryStatus(ctx context.Context, checkoutRequestID string) (*domain.Outcome, error)
}

// ConfirmationStream is one open realtime channel delivering payment
// outcomes for a single checkout request.
type ConfirmationStream interface {
	// Next blocks until the channel delivers the next outcome or the
	// connection errors. Callers stop reading after a terminal outcome.
	Next() (*domain.Outcome, error)

	// Close tears the channel down. Safe to call more than once.
	Close() error
}

// StreamDialer opens confirmation streams registered for a checkout request.
// This is a Secondary Port (Driven Port).
type StreamDialer interface {
	// Dial connects and registers for the given checkout request identifier.
	Dial(ctx context.Context, checkoutRequestID string) (ConfirmationStream, error)
}
