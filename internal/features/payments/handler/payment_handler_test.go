package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	checkoutdomain "arobisca-checkout/internal/features/checkout/domain"
	checkoutservice "arobisca-checkout/internal/features/checkout/service"
	"arobisca-checkout/internal/features/payments/domain"
	"arobisca-checkout/internal/features/payments/ports"
	"arobisca-checkout/internal/features/payments/service"
	shippingdomain "arobisca-checkout/internal/features/shipping/domain"
	shippingservice "arobisca-checkout/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway scripts the M-Pesa gateway responses.
type stubGateway struct {
	initiateID  string
	initiateErr error
	outcome     *domain.Outcome
	queryErr    error
}

func (g *stubGateway) InitiateSTK(ctx context.Context, phone string, amount float64) (string, error) {
	return g.initiateID, g.initiateErr
}

func (g *stubGateway) QueryStatus(ctx context.Context, checkoutRequestID string) (*domain.Outcome, error) {
	return g.outcome, g.queryErr
}

// noDialer fails every dial so sessions run on manual polling only.
type noDialer struct{}

func (noDialer) Dial(ctx context.Context, checkoutRequestID string) (ports.ConfirmationStream, error) {
	return nil, errors.New("socket unreachable")
}

// stubResolver resolves every code to a fixed coupon or error.
type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, code string, productIDs []string, subtotal float64) (*checkoutdomain.Coupon, error) {
	return nil, errors.New("not used")
}

// stubSubmitter answers every submission with a fixed order or error.
type stubSubmitter struct {
	order *checkoutdomain.Order
	err   error
}

func (s *stubSubmitter) Submit(ctx context.Context, draft *checkoutdomain.OrderDraft) (*checkoutdomain.Order, error) {
	return s.order, s.err
}

// stubFeeProvider serves a fixed shipping fee table.
type stubFeeProvider struct{}

func (stubFeeProvider) List(ctx context.Context) ([]shippingdomain.Method, error) {
	return []shippingdomain.Method{
		{ID: "nairobi-cbd", Destination: "Nairobi CBD", Amount: 150, CODAvailable: true},
	}, nil
}

func setupApp(gateway *stubGateway, cooldown time.Duration, submitter *stubSubmitter) *fiber.App {
	manager := service.NewManager(gateway, noDialer{}, cooldown, nil)
	shipping := shippingservice.NewShippingService(stubFeeProvider{})
	checkout := checkoutservice.NewCheckoutService(stubResolver{}, submitter, shipping, manager, nil)

	app := fiber.New()
	h := NewPaymentHandler(checkout, manager)
	app.Post("/checkout/payments", h.StartPayment)
	app.Get("/checkout/payments/:id", h.GetSession)
	app.Post("/checkout/payments/:id/status", h.CheckStatus)
	app.Post("/checkout/payments/:id/resend", h.ResendSTK)
	app.Delete("/checkout/payments/:id", h.CloseSession)
	return app
}

func startBody() startPaymentRequest {
	address := checkoutdomain.Address{
		FullName: "Wanjiku Kamau",
		Street:   "Moi Avenue 12",
		City:     "Nairobi",
		Phone:    "254712345678",
	}
	return startPaymentRequest{
		Phone: "254712345678",
		Order: checkoutdomain.OrderDraft{
			Items:            []checkoutdomain.CartItem{{ID: "arabica-250g", UnitPrice: 850, Quantity: 2}},
			ShippingAddress:  address,
			BillingAddress:   address,
			ShippingMethodID: "nairobi-cbd",
		},
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPaymentHandler_StartPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := setupApp(&stubGateway{initiateID: "ws_CO_1"}, 0, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body sessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ws_CO_1", body.Session.RequestID)
		assert.Equal(t, domain.StateStkSent, body.Session.State)
		assert.Nil(t, body.Order)
	})

	t.Run("MissingPhone", func(t *testing.T) {
		app := setupApp(&stubGateway{initiateID: "ws_CO_1"}, 0, &stubSubmitter{})

		body := startBody()
		body.Phone = ""

		resp := doJSON(t, app, "POST", "/checkout/payments", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("GatewayDown", func(t *testing.T) {
		app := setupApp(&stubGateway{initiateErr: errors.New("daraja down")}, 0, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestPaymentHandler_CheckStatus(t *testing.T) {
	t.Run("ConfirmedSubmitsOrder", func(t *testing.T) {
		gateway := &stubGateway{
			initiateID: "ws_CO_2",
			outcome: &domain.Outcome{
				State:    domain.StateConfirmed,
				Evidence: &domain.Evidence{ReceiptNumber: "QHX12ABC34", Amount: 1850},
			},
		}
		app := setupApp(gateway, 0, &stubSubmitter{
			order: &checkoutdomain.Order{ID: "ord_7", Status: "paid"},
		})

		resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, "POST", "/checkout/payments/ws_CO_2/status", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.StateConfirmed, body.Session.State)
		require.NotNil(t, body.Order)
		assert.Equal(t, "ord_7", body.Order.ID)
	})

	t.Run("Pending", func(t *testing.T) {
		gateway := &stubGateway{
			initiateID: "ws_CO_3",
			outcome:    &domain.Outcome{State: domain.StateStkSent, Message: "still processing"},
		}
		app := setupApp(gateway, 0, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, "POST", "/checkout/payments/ws_CO_3/status", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body sessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.StateStkSent, body.Session.State)
		assert.Nil(t, body.Order)
	})

	t.Run("NotFound", func(t *testing.T) {
		app := setupApp(&stubGateway{}, 0, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments/ws_CO_missing/status", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("GatewayError", func(t *testing.T) {
		gateway := &stubGateway{initiateID: "ws_CO_4", queryErr: errors.New("daraja down")}
		app := setupApp(gateway, 0, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, "POST", "/checkout/payments/ws_CO_4/status", nil)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestPaymentHandler_ResendSTK(t *testing.T) {
	t.Run("Cooldown", func(t *testing.T) {
		app := setupApp(&stubGateway{initiateID: "ws_CO_5"}, 30*time.Second, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = doJSON(t, app, "POST", "/checkout/payments/ws_CO_5/resend", nil)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		app := setupApp(&stubGateway{}, 0, &stubSubmitter{})

		resp := doJSON(t, app, "POST", "/checkout/payments/ws_CO_missing/resend", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPaymentHandler_CloseSession(t *testing.T) {
	app := setupApp(&stubGateway{initiateID: "ws_CO_6"}, 0, &stubSubmitter{})

	resp := doJSON(t, app, "POST", "/checkout/payments", startBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/checkout/payments/ws_CO_6", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/checkout/payments/ws_CO_6", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
