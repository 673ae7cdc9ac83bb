package handler

import (
	"errors"
	"net/http"

	"arobisca-checkout/internal/core/logger"
	checkoutdomain "arobisca-checkout/internal/features/checkout/domain"
	checkoutservice "arobisca-checkout/internal/features/checkout/service"
	"arobisca-checkout/internal/features/payments/domain"
	"arobisca-checkout/internal/features/payments/service"
	shippingservice "arobisca-checkout/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PaymentHandler handles HTTP requests for M-Pesa payment sessions.
type PaymentHandler struct {
	checkoutService *checkoutservice.CheckoutService
	manager         *service.Manager
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(checkoutService *checkoutservice.CheckoutService, manager *service.Manager) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		manager:         manager,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// startPaymentRequest is the body of a payment kickoff.
type startPaymentRequest struct {
	// Phone is the M-Pesa number the STK push is sent to.
	Phone string `json:"phone"`
	// Order is the draft submitted automatically once the payment confirms.
	Order checkoutdomain.OrderDraft `json:"order"`
}

// sessionResponse is a session snapshot plus the order submitted for it,
// once the payment confirmed and the submission went through.
type sessionResponse struct {
	// Session is the current payment session state.
	Session domain.Snapshot `json:"session"`
	// Order is the submitted order, present only after confirmation.
	Order *checkoutdomain.Order `json:"order,omitempty"`
}

// rayID extracts the request identifier set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

// StartPayment godoc
// @Summary Start an M-Pesa payment
// @Description Sends an STK push for the order's grand total and tracks the session; the order is submitted automatically when the payment confirms
// @Tags payments
// @Accept json
// @Produce json
// @Param request body startPaymentRequest true "Phone number and order draft"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /checkout/payments [post]
func (h *PaymentHandler) StartPayment(c *fiber.Ctx) error {
	var req startPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	snap, err := h.checkoutService.StartMpesaPayment(c.UserContext(), req.Phone, &req.Order)
	if err != nil {
		return h.startError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(sessionResponse{Session: snap})
}

// GetSession godoc
// @Summary Get a payment session
// @Description Returns the current session state without polling the gateway
// @Tags payments
// @Produce json
// @Param id path string true "Checkout request ID"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /checkout/payments/{id} [get]
func (h *PaymentHandler) GetSession(c *fiber.Ctx) error {
	snap, err := h.manager.Get(c.Params("id"))
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.Status(http.StatusOK).JSON(h.respond(snap))
}

// CheckStatus godoc
// @Summary Check a payment manually
// @Description Polls the gateway for the session's outcome; safe to race the realtime channel, the payment settles exactly once
// @Tags payments
// @Produce json
// @Param id path string true "Checkout request ID"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /checkout/payments/{id}/status [post]
func (h *PaymentHandler) CheckStatus(c *fiber.Ctx) error {
	snap, err := h.manager.CheckStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return h.sessionError(c, err)
		}

		logger.Get().Error("Manual payment status check failed",
			zap.String("checkout_request_id", c.Params("id")),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: "Could not reach the payment gateway",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(h.respond(snap))
}

// ResendSTK godoc
// @Summary Resend the STK push
// @Description Fires a fresh STK push for a missed or failed prompt; throttled by a cooldown
// @Tags payments
// @Produce json
// @Param id path string true "Checkout request ID"
// @Success 200 {object} sessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /checkout/payments/{id}/resend [post]
func (h *PaymentHandler) ResendSTK(c *fiber.Ctx) error {
	snap, err := h.manager.Resend(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return h.sessionError(c, err)
		case errors.Is(err, service.ErrSessionFinished):
			return c.Status(http.StatusConflict).JSON(ErrorResponse{
				Message: "Payment already completed",
				RayID:   rayID(c),
			})
		case errors.Is(err, service.ErrResendCooldown):
			return c.Status(http.StatusTooManyRequests).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("STK resend failed",
			zap.String("checkout_request_id", c.Params("id")),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: "Could not resend the payment prompt",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(sessionResponse{Session: snap})
}

// CloseSession godoc
// @Summary Close a payment session
// @Description Tears the session down, for example when the customer dismisses the payment dialog
// @Tags payments
// @Param id path string true "Checkout request ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /checkout/payments/{id} [delete]
func (h *PaymentHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.manager.Close(c.Params("id")); err != nil {
		return h.sessionError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// respond pairs a snapshot with its submitted order, if any.
func (h *PaymentHandler) respond(snap domain.Snapshot) sessionResponse {
	resp := sessionResponse{Session: snap}
	if order, ok := h.checkoutService.ConfirmedOrder(snap.RequestID); ok {
		resp.Order = order
	}
	return resp
}

// sessionError answers a missing session lookup.
func (h *PaymentHandler) sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "Payment session not found",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   rayID(c),
	})
}

// startError maps payment kickoff failures to HTTP responses.
func (h *PaymentHandler) startError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	switch {
	case errors.Is(err, checkoutservice.ErrMissingPhone),
		errors.Is(err, checkoutdomain.ErrEmptyCart),
		errors.Is(err, checkoutdomain.ErrMissingAddressField),
		errors.Is(err, checkoutdomain.ErrInvalidPaymentMethod),
		errors.Is(err, checkoutdomain.ErrInvalidDiscountType),
		errors.Is(err, checkoutdomain.ErrPercentageOutOfRange),
		errors.Is(err, checkoutdomain.ErrNegativeDiscount):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, shippingservice.ErrMethodNotFound):
		status = http.StatusNotFound
		msg = "Shipping method not found"
	case errors.Is(err, checkoutservice.ErrCouponMinimumNotMet):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	default:
		logger.Get().Error("Failed to start payment",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		status = http.StatusBadGateway
		msg = "Could not send the payment prompt"
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}
