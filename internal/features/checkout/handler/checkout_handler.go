package handler

import (
	"errors"
	"net/http"

	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/features/checkout/domain"
	"arobisca-checkout/internal/features/checkout/service"
	shippingservice "arobisca-checkout/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for quotes, coupons and orders.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// applyCouponRequest is the body of a coupon application.
type applyCouponRequest struct {
	// Code is the coupon code as typed by the customer.
	Code string `json:"code"`
	// Items are the current cart lines.
	Items []domain.CartItem `json:"items"`
}

// applyCouponResponse carries the resolved coupon and its activation state.
type applyCouponResponse struct {
	// Coupon is the resolved coupon descriptor.
	Coupon *domain.Coupon `json:"coupon"`
	// Active reports whether the coupon meets its minimum purchase.
	Active bool `json:"active"`
}

// rayID extracts the request identifier set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

// Quote godoc
// @Summary Compute cart totals
// @Description Computes subtotal, discount, shipping and grand total for the current cart state, applying the COD availability rule
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body service.QuoteRequest true "Cart state"
// @Success 200 {object} service.Quote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /checkout/quote [post]
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	var req service.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	quote, err := h.checkoutService.Quote(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, shippingservice.ErrMethodNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "Shipping method not found",
				RayID:   rayID(c),
			})
		}
		if isInvalidCoupon(err) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to compute quote",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(quote)
}

// ApplyCoupon godoc
// @Summary Apply a coupon code
// @Description Resolves a coupon code against the store for the current cart; store-side rejection messages are passed through verbatim
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body applyCouponRequest true "Coupon code and cart lines"
// @Success 200 {object} applyCouponResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout/coupons/apply [post]
func (h *CheckoutHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req applyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	coupon, active, err := h.checkoutService.ApplyCoupon(c.UserContext(), req.Code, req.Items)
	if err != nil {
		var rejected *domain.CouponRejectedError
		switch {
		case errors.Is(err, service.ErrEmptyCouponCode):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Coupon code is required",
				RayID:   rayID(c),
			})
		case errors.As(err, &rejected):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Message: rejected.Message,
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to apply coupon",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: "Could not verify coupon",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(applyCouponResponse{
		Coupon: coupon,
		Active: active,
	})
}

// PlaceOrder godoc
// @Summary Submit an order
// @Description Validates and submits the assembled order draft to the store; used directly for cash on delivery orders
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body domain.OrderDraft true "Order draft"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout/orders [post]
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	var draft domain.OrderDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	order, err := h.checkoutService.PlaceOrder(c.UserContext(), &draft)
	if err != nil {
		return h.orderError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// isInvalidCoupon reports whether err is a structural coupon defect.
func isInvalidCoupon(err error) bool {
	return errors.Is(err, domain.ErrInvalidDiscountType) ||
		errors.Is(err, domain.ErrPercentageOutOfRange) ||
		errors.Is(err, domain.ErrNegativeDiscount)
}

// orderError maps order submission failures to HTTP responses.
func (h *CheckoutHandler) orderError(c *fiber.Ctx, err error) error {
	var rejected *domain.OrderRejectedError

	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrMissingAddressField),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		isInvalidCoupon(err):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, shippingservice.ErrMethodNotFound):
		status = http.StatusNotFound
		msg = "Shipping method not found"
	case errors.Is(err, service.ErrCouponMinimumNotMet),
		errors.Is(err, service.ErrCODNotAvailable),
		errors.Is(err, service.ErrPaymentNotSettled):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	case errors.As(err, &rejected):
		status = http.StatusUnprocessableEntity
		msg = rejected.Message
	default:
		logger.Get().Error("Failed to submit order",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}
