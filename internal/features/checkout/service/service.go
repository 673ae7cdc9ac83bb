package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/core/metrics"
	"arobisca-checkout/internal/features/checkout/domain"
	"arobisca-checkout/internal/features/checkout/ports"
	paymentsdomain "arobisca-checkout/internal/features/payments/domain"
	paymentsservice "arobisca-checkout/internal/features/payments/service"
	shippingdomain "arobisca-checkout/internal/features/shipping/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCouponCode is returned when the coupon code is blank.
	ErrEmptyCouponCode = errors.New("coupon code must not be empty")
	// ErrCouponMinimumNotMet is returned when the applied coupon's minimum
	// purchase is not reached at submission time.
	ErrCouponMinimumNotMet = errors.New("coupon minimum purchase not met")
	// ErrCODNotAvailable is returned when a cash on delivery order targets
	// a destination without COD support.
	ErrCODNotAvailable = errors.New("cash on delivery not available for this destination")
	// ErrPaymentNotSettled is returned when an M-Pesa order is submitted
	// without settlement evidence.
	ErrPaymentNotSettled = errors.New("mpesa orders require a confirmed payment")
	// ErrMissingPhone is returned when a payment is started without a phone number.
	ErrMissingPhone = errors.New("phone number is required")
)

// ShippingGate is the slice of the shipping service the checkout needs:
// method lookup and the COD availability rule.
type ShippingGate interface {
	Method(ctx context.Context, id string) (*shippingdomain.Method, error)
	GateCOD(method *shippingdomain.Method, payment domain.PaymentMethod) (domain.PaymentMethod, string)
}

// PaymentInitiator starts M-Pesa payment sessions. Satisfied by the
// payments manager.
type PaymentInitiator interface {
	Initiate(ctx context.Context, phone string, amount float64, onConfirm paymentsservice.ConfirmFunc) (paymentsdomain.Snapshot, error)
}

// QuoteRequest describes the cart state a quote is computed for.
type QuoteRequest struct {
	// Items are the cart lines.
	Items []domain.CartItem `json:"items"`
	// Coupon is the currently applied coupon, if any.
	Coupon *domain.Coupon `json:"coupon,omitempty"`
	// ShippingMethodID is the selected shipping destination, if any.
	ShippingMethodID string `json:"shippingMethodId,omitempty"`
	// PaymentMethod is the customer's current payment selection.
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

// Quote is the reactive pricing breakdown for the current cart state.
type Quote struct {
	// Totals is the monetary breakdown.
	Totals domain.Totals `json:"totals"`
	// PaymentMethod is the effective payment method after the COD gate.
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	// Notice is a user-facing message when the gate changed the selection.
	Notice string `json:"notice,omitempty"`
	// CouponActive reports whether the applied coupon meets its minimum.
	CouponActive bool `json:"couponActive"`
}

// CheckoutService orchestrates pricing, coupons, the COD gate, M-Pesa
// payments and order submission.
type CheckoutService struct {
	resolver  ports.CouponResolver
	submitter ports.OrderSubmitter
	shipping  ShippingGate
	payments  PaymentInitiator
	metrics   *metrics.CheckoutMetrics
	log       *zap.Logger

	mu sync.Mutex
	// confirmedOrders maps a checkout request identifier to the order
	// submitted after its payment confirmed.
	confirmedOrders map[string]*domain.Order
}

// NewCheckoutService creates a new CheckoutService. metrics may be nil.
func NewCheckoutService(resolver ports.CouponResolver, submitter ports.OrderSubmitter, shipping ShippingGate, payments PaymentInitiator, m *metrics.CheckoutMetrics) *CheckoutService {
	return &CheckoutService{
		resolver:        resolver,
		submitter:       submitter,
		shipping:        shipping,
		payments:        payments,
		metrics:         m,
		log:             logger.Named("checkout"),
		confirmedOrders: make(map[string]*domain.Order),
	}
}

// ApplyCoupon resolves a coupon code for the given cart. The returned
// bool reports whether the coupon is active for the cart's subtotal; an
// inactive coupon stays applied for display but blocks submission.
func (s *CheckoutService) ApplyCoupon(ctx context.Context, code string, items []domain.CartItem) (*domain.Coupon, bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, false, ErrEmptyCouponCode
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ID)
	}
	subtotal := domain.CalculateTotals(items, nil, 0).Subtotal

	coupon, err := s.resolver.Resolve(ctx, code, productIDs, subtotal)
	if err != nil {
		return nil, false, err
	}

	if err := coupon.Validate(); err != nil {
		return nil, false, fmt.Errorf("store returned an invalid coupon: %w", err)
	}

	s.log.Info("Coupon applied",
		zap.String("code", coupon.Code),
		zap.String("discount_type", string(coupon.DiscountType)),
	)

	return coupon, coupon.ActiveFor(subtotal), nil
}

// Quote computes the totals and effective payment method for the
// current cart state. It runs on every cart, coupon or shipping change.
func (s *CheckoutService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if req.Coupon != nil {
		if err := req.Coupon.Validate(); err != nil {
			return nil, err
		}
	}

	var method *shippingdomain.Method
	if req.ShippingMethodID != "" {
		var err error
		method, err = s.shipping.Method(ctx, req.ShippingMethodID)
		if err != nil {
			return nil, err
		}
	}

	fee := 0.0
	if method != nil {
		fee = method.Amount
	}

	totals := domain.CalculateTotals(req.Items, req.Coupon, fee)
	payment, notice := s.shipping.GateCOD(method, req.PaymentMethod)

	return &Quote{
		Totals:        totals,
		PaymentMethod: payment,
		Notice:        notice,
		CouponActive:  req.Coupon == nil || req.Coupon.ActiveFor(totals.Subtotal),
	}, nil
}

// PlaceOrder validates and submits an order draft. Totals are always
// recomputed server-side; client-provided totals are ignored. M-Pesa
// drafts must carry settlement evidence, so this path is effectively
// for cash on delivery orders.
func (s *CheckoutService) PlaceOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	if err := s.prepareDraft(ctx, draft); err != nil {
		return nil, err
	}

	if draft.PaymentMethod == domain.PaymentMethodMpesa && draft.Evidence == nil {
		return nil, ErrPaymentNotSettled
	}

	return s.submit(ctx, draft)
}

// StartMpesaPayment recomputes and validates the draft, fires the STK
// push for the grand total and registers a callback that submits the
// order exactly once when the payment confirms.
func (s *CheckoutService) StartMpesaPayment(ctx context.Context, phone string, draft *domain.OrderDraft) (paymentsdomain.Snapshot, error) {
	if strings.TrimSpace(phone) == "" {
		return paymentsdomain.Snapshot{}, ErrMissingPhone
	}

	draft.PaymentMethod = domain.PaymentMethodMpesa
	if err := s.prepareDraft(ctx, draft); err != nil {
		return paymentsdomain.Snapshot{}, err
	}

	// The callback owns a copy so later edits to the cart cannot change
	// what gets submitted once the payment settles.
	captured := *draft

	return s.payments.Initiate(ctx, phone, draft.Totals.Total, func(requestID string, evidence paymentsdomain.Evidence) {
		s.submitConfirmed(requestID, &captured, evidence)
	})
}

// ConfirmedOrder returns the order submitted for a confirmed payment
// session, if the submission already happened.
func (s *CheckoutService) ConfirmedOrder(requestID string) (*domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.confirmedOrders[requestID]
	return order, ok
}

// prepareDraft validates the draft, recomputes its totals from the
// selected shipping method and enforces the coupon minimum and COD
// availability rules.
func (s *CheckoutService) prepareDraft(ctx context.Context, draft *domain.OrderDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	if draft.Coupon != nil {
		if err := draft.Coupon.Validate(); err != nil {
			return err
		}
	}

	method, err := s.shipping.Method(ctx, draft.ShippingMethodID)
	if err != nil {
		return err
	}

	totals := domain.CalculateTotals(draft.Items, draft.Coupon, method.Amount)

	if draft.Coupon != nil && !draft.Coupon.ActiveFor(totals.Subtotal) {
		return fmt.Errorf("%w: coupon %q requires a minimum purchase of KES %.2f",
			ErrCouponMinimumNotMet, draft.Coupon.Code, draft.Coupon.MinimumPurchase)
	}

	if draft.PaymentMethod == domain.PaymentMethodCOD && !method.CODAvailable {
		return ErrCODNotAvailable
	}

	draft.Totals = totals
	return nil
}

// submit posts the draft to the store, assigning an idempotency key on
// first use so retries are deduplicated server-side.
func (s *CheckoutService) submit(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	if draft.IdempotencyKey == "" {
		draft.IdempotencyKey = uuid.NewString()
	}

	order, err := s.submitter.Submit(ctx, draft)
	if err != nil {
		s.metrics.OrderFailed()
		return nil, err
	}

	s.metrics.OrderSubmitted()
	s.log.Info("Order submitted",
		zap.String("order_id", order.ID),
		zap.String("payment_method", string(draft.PaymentMethod)),
		zap.Float64("total", draft.Totals.Total),
	)
	return order, nil
}

// submitConfirmed runs after an M-Pesa payment settles. The session's
// one-shot confirmation latch guarantees a single invocation, so the
// order is submitted exactly once regardless of which of the realtime
// push or the manual poll won.
func (s *CheckoutService) submitConfirmed(requestID string, draft *domain.OrderDraft, evidence paymentsdomain.Evidence) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	draft.PaymentMethod = domain.PaymentMethodMpesa
	draft.Evidence = &domain.TransactionEvidence{
		ReceiptNumber:   evidence.ReceiptNumber,
		Amount:          evidence.Amount,
		PhoneNumber:     evidence.PhoneNumber,
		TransactionDate: evidence.TransactionDate,
	}

	order, err := s.submit(ctx, draft)
	if err != nil {
		s.log.Error("Order submission after payment confirmation failed",
			zap.String("checkout_request_id", requestID),
			zap.String("receipt_number", evidence.ReceiptNumber),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.confirmedOrders[requestID] = order
	s.mu.Unlock()
}
