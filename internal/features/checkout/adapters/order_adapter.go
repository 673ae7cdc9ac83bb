package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arobisca-checkout/internal/core/config"
	"arobisca-checkout/internal/core/httpclient"
	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/features/checkout/domain"

	"go.uber.org/zap"
)

// StoreOrderAdapter implements the OrderSubmitter port using the store REST API.
type StoreOrderAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the store API base URL.
	baseURL string
}

// NewStoreOrderAdapter creates a new instance of StoreOrderAdapter.
func NewStoreOrderAdapter(cfg config.StoreConfig) *StoreOrderAdapter {
	return &StoreOrderAdapter{
		client:  httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		baseURL: cfg.URL,
	}
}

// Submit posts the order draft to the store and returns the persisted order.
func (a *StoreOrderAdapter) Submit(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	url := fmt.Sprintf("%s/orders", a.baseURL)

	resp, err := httpclient.PostJSON(ctx, a.client, url, draft)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("order creation failed with status %d", resp.StatusCode)
		}
		logger.Get().Warn("Store rejected order submission",
			zap.String("idempotency_key", draft.IdempotencyKey),
			zap.String("reason", msg),
		)
		return nil, &domain.OrderRejectedError{Message: msg}
	}

	return mapOrder(body.Data), nil
}

// mapOrder converts the store's order payload into the domain entity.
func mapOrder(o storeOrder) *domain.Order {
	return &domain.Order{
		ID:        o.ID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Totals: domain.Totals{
			Subtotal: o.Subtotal,
			Discount: o.Discount,
			Shipping: o.Shipping,
			Total:    o.Total,
		},
	}
}

// internal structs for mapping

// createOrderResponse is the store API response envelope.
type createOrderResponse struct {
	// Success indicates whether the order was persisted.
	Success bool `json:"success"`
	// Message carries the rejection reason when Success is false.
	Message string `json:"message"`
	// Data is the persisted order.
	Data storeOrder `json:"data"`
}

// storeOrder is the raw order shape returned by the store API.
type storeOrder struct {
	// ID is the store-assigned order identifier.
	ID string `json:"id"`
	// Status is the store-side order status.
	Status string `json:"status"`
	// Subtotal echoes the submitted subtotal.
	Subtotal float64 `json:"subtotal"`
	// Discount echoes the submitted discount.
	Discount float64 `json:"discount"`
	// Shipping echoes the submitted shipping fee.
	Shipping float64 `json:"shipping"`
	// Total echoes the submitted total.
	Total float64 `json:"total"`
	// CreatedAt is when the store recorded the order.
	CreatedAt time.Time `json:"createdAt"`
}
