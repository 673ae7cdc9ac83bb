package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arobisca-checkout/internal/core/config"
	"arobisca-checkout/internal/core/httpclient"
	"arobisca-checkout/internal/features/checkout/domain"
)

// StoreCouponAdapter implements the CouponResolver port using the store REST API.
type StoreCouponAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the store API base URL.
	baseURL string
}

// NewStoreCouponAdapter creates a new instance of StoreCouponAdapter.
func NewStoreCouponAdapter(cfg config.StoreConfig) *StoreCouponAdapter {
	return &StoreCouponAdapter{
		client:  httpclient.NewClient(time.Duration(cfg.TimeoutSeconds) * time.Second),
		baseURL: cfg.URL,
	}
}

// Resolve checks a coupon code against the store's check-coupon endpoint.
func (a *StoreCouponAdapter) Resolve(ctx context.Context, code string, productIDs []string, subtotal float64) (*domain.Coupon, error) {
	url := fmt.Sprintf("%s/couponCodes/check-coupon", a.baseURL)

	resp, err := httpclient.PostJSON(ctx, a.client, url, checkCouponRequest{
		CouponCode:     code,
		ProductIDs:     productIDs,
		PurchaseAmount: subtotal,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body checkCouponResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode coupon response: %w", err)
	}

	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("coupon check failed with status %d", resp.StatusCode)
		}
		return nil, &domain.CouponRejectedError{Message: msg}
	}

	return mapCoupon(body.Data), nil
}

// mapCoupon converts the store's coupon payload into the domain entity.
func mapCoupon(c storeCoupon) *domain.Coupon {
	return &domain.Coupon{
		Code:                 c.Code,
		DiscountType:         domain.DiscountType(c.DiscountType),
		DiscountAmount:       c.DiscountAmount,
		MinimumPurchase:      c.MinimumPurchaseAmount,
		ApplicableCategoryID: c.ApplicableCategoryID,
		ApplicableProductID:  c.ApplicableProductID,
	}
}

// internal structs for mapping

// checkCouponRequest is the store API request payload.
type checkCouponRequest struct {
	// CouponCode is the uppercase-normalized candidate code.
	CouponCode string `json:"couponCode"`
	// ProductIDs are the cart's product identifiers.
	ProductIDs []string `json:"productIds"`
	// PurchaseAmount is the current cart subtotal.
	PurchaseAmount float64 `json:"purchaseAmount"`
}

// checkCouponResponse is the store API response envelope.
type checkCouponResponse struct {
	// Success indicates whether the coupon resolved.
	Success bool `json:"success"`
	// Message carries the rejection reason when Success is false.
	Message string `json:"message"`
	// Data is the resolved coupon descriptor.
	Data storeCoupon `json:"data"`
}

// storeCoupon is the raw coupon shape returned by the store API.
type storeCoupon struct {
	// Code is the coupon code.
	Code string `json:"code"`
	// DiscountType is "percentage" or "fixed".
	DiscountType string `json:"discountType"`
	// DiscountAmount is the percentage or fixed KES amount.
	DiscountAmount float64 `json:"discountAmount"`
	// MinimumPurchaseAmount is the activation threshold.
	MinimumPurchaseAmount float64 `json:"minimumPurchaseAmount"`
	// ApplicableCategoryID optionally restricts the coupon to a category.
	ApplicableCategoryID string `json:"applicableCategoryId"`
	// ApplicableProductID optionally restricts the coupon to a product.
	ApplicableProductID string `json:"applicableProductId"`
}
