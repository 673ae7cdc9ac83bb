package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmptyCart is returned when an order draft has no items.
	ErrEmptyCart = errors.New("cart has no items")
	// ErrMissingAddressField is returned when a required address field is blank.
	ErrMissingAddressField = errors.New("missing required address field")
	// ErrInvalidPaymentMethod is returned for an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Address holds the delivery or billing contact details.
type Address struct {
	// FullName is the recipient's full name.
	FullName string `json:"fullName"`
	// Street is the street address or building.
	Street string `json:"street"`
	// City is the delivery city or town.
	City string `json:"city"`
	// Phone is the contact phone number.
	Phone string `json:"phone"`
	// Email is the contact email address.
	Email string `json:"email,omitempty"`
}

// Validate checks that the required address fields are present.
func (a Address) Validate() error {
	if a.FullName == "" || a.Street == "" || a.City == "" || a.Phone == "" {
		return ErrMissingAddressField
	}
	return nil
}

// TransactionEvidence captures the proof of a settled M-Pesa payment.
type TransactionEvidence struct {
	// ReceiptNumber is the M-Pesa receipt for the transaction.
	ReceiptNumber string `json:"receiptNumber"`
	// Amount is the amount that was charged.
	Amount float64 `json:"amount"`
	// PhoneNumber is the number the payment was charged to.
	PhoneNumber string `json:"phoneNumber"`
	// TransactionDate is when the gateway settled the payment.
	TransactionDate time.Time `json:"transactionDate"`
}

// OrderDraft is the payload assembled once at submission time.
type OrderDraft struct {
	// Items are the cart lines being purchased.
	Items []CartItem `json:"items"`
	// ShippingAddress is where the order is delivered.
	ShippingAddress Address `json:"shippingAddress"`
	// BillingAddress is the billing contact for the order.
	BillingAddress Address `json:"billingAddress"`
	// ShippingMethodID identifies the selected shipping destination.
	ShippingMethodID string `json:"shippingMethodId"`
	// PaymentMethod is how the order is settled.
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	// DeliveryNote is an optional free-text note for the courier.
	DeliveryNote string `json:"deliveryNote,omitempty"`
	// Evidence is the M-Pesa settlement proof; nil for COD orders.
	Evidence *TransactionEvidence `json:"transactionEvidence,omitempty"`
	// Coupon is a snapshot of the applied coupon; nil when none.
	Coupon *Coupon `json:"coupon,omitempty"`
	// Totals is the computed monetary breakdown.
	Totals Totals `json:"totals"`
	// IdempotencyKey dedupes retried submissions server-side.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Validate checks the draft's client-side preconditions: items present,
// addresses complete and the payment method known. COD eligibility and
// coupon minimums are enforced by the checkout service, which knows the
// selected shipping method.
func (d *OrderDraft) Validate() error {
	if len(d.Items) == 0 {
		return ErrEmptyCart
	}
	if err := d.ShippingAddress.Validate(); err != nil {
		return err
	}
	if err := d.BillingAddress.Validate(); err != nil {
		return err
	}
	if d.PaymentMethod != PaymentMethodMpesa && d.PaymentMethod != PaymentMethodCOD {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// Order is the persisted order returned by the store API.
type Order struct {
	// ID is the store-assigned order identifier.
	ID string `json:"id"`
	// Status is the store-side order status.
	Status string `json:"status"`
	// Totals echoes the submitted monetary breakdown.
	Totals Totals `json:"totals"`
	// CreatedAt is when the store recorded the order.
	CreatedAt time.Time `json:"createdAt"`
}
