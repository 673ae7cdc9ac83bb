package handler

import (
	"net/http"

	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShippingHandler handles HTTP requests for shipping destinations.
type ShippingHandler struct {
	shippingService *service.ShippingService
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(shippingService *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ListShippingMethods godoc
// @Summary List shipping destinations
// @Description Returns the shipping fee table with destinations, fees, delivery estimates and COD availability
// @Tags shipping
// @Produce json
// @Success 200 {array} domain.Method
// @Failure 502 {object} ErrorResponse
// @Router /shipping-methods [get]
func (h *ShippingHandler) ListShippingMethods(c *fiber.Ctx) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	methods, err := h.shippingService.List(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to list shipping methods",
			zap.String("ray_id", rayID),
			zap.Error(err),
		)

		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: "Could not load shipping destinations",
			RayID:   rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(methods)
}
