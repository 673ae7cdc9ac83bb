package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"arobisca-checkout/internal/core/config"
	"arobisca-checkout/internal/core/httpclient"
	"arobisca-checkout/internal/features/shipping/domain"
)

// StoreShippingAdapter implements the FeeProvider port using the store REST API.
type StoreShippingAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the store API base URL.
	baseURL string
}

// NewStoreShippingAdapter creates a new instance of StoreShippingAdapter.
func NewStoreShippingAdapter(cfg config.StoreConfig) *StoreShippingAdapter {
	return &StoreShippingAdapter{
		client:  httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		baseURL: cfg.URL,
	}
}

// List fetches the shipping fee table from the store.
func (a *StoreShippingAdapter) List(ctx context.Context) ([]domain.Method, error) {
	url := fmt.Sprintf("%s/shipping-fees", a.baseURL)

	var fees []storeShippingFee
	if err := httpclient.GetJSON(ctx, a.client, url, &fees); err != nil {
		return nil, fmt.Errorf("failed to fetch shipping fees: %w", err)
	}

	methods := make([]domain.Method, 0, len(fees))
	for _, fee := range fees {
		methods = append(methods, domain.Method{
			ID:            fee.ID,
			Destination:   fee.Destination,
			PickupStation: fee.PickupStation,
			DistanceKm:    fee.DistanceKm,
			Amount:        fee.Amount,
			DeliveryTime:  fee.DeliveryTime,
			CODAvailable:  fee.CODAvailable,
		})
	}

	return methods, nil
}

// internal structs for mapping

// storeShippingFee is the raw shipping fee shape returned by the store API.
type storeShippingFee struct {
	// ID is the shipping fee identifier.
	ID string `json:"id"`
	// Destination is the delivery area name.
	Destination string `json:"destination"`
	// PickupStation is the pickup point within the destination.
	PickupStation string `json:"pickupStation"`
	// DistanceKm is the distance from the warehouse in kilometres.
	DistanceKm float64 `json:"distanceKm"`
	// Amount is the shipping fee in KES.
	Amount float64 `json:"amount"`
	// DeliveryTime is the human-readable delivery estimate.
	DeliveryTime string `json:"deliveryTime"`
	// CODAvailable reports whether cash on delivery is offered.
	CODAvailable bool `json:"codAvailable"`
}
