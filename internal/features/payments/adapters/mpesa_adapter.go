package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arobisca-checkout/internal/core/config"
	"arobisca-checkout/internal/core/httpclient"
	"arobisca-checkout/internal/features/payments/domain"
)

// MpesaAdapter implements the Gateway port using the M-Pesa gateway REST API.
type MpesaAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the gateway base URL.
	baseURL string
}

// NewMpesaAdapter creates a new instance of MpesaAdapter.
func NewMpesaAdapter(cfg config.MpesaConfig) *MpesaAdapter {
	return &MpesaAdapter{
		client:  httpclient.NewClient(30 * time.Second),
		baseURL: cfg.URL,
	}
}

// InitiateSTK triggers the payment prompt on the customer's phone.
func (a *MpesaAdapter) InitiateSTK(ctx context.Context, phone string, amount float64) (string, error) {
	url := fmt.Sprintf("%s/mpesa/stk", a.baseURL)

	resp, err := httpclient.PostJSON(ctx, a.client, url, stkPushRequest{
		Phone:  phone,
		Amount: amount,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stk push failed with status: %d", resp.StatusCode)
	}

	var body stkPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode stk push response: %w", err)
	}

	if body.CheckoutRequestID == "" {
		return "", fmt.Errorf("stk push response missing CheckoutRequestID")
	}

	return body.CheckoutRequestID, nil
}

// QueryStatus polls the gateway's payment status endpoint and maps the
// result code taxonomy onto session outcomes.
func (a *MpesaAdapter) QueryStatus(ctx context.Context, checkoutRequestID string) (*domain.Outcome, error) {
	url := fmt.Sprintf("%s/mpesa/paymentStatus", a.baseURL)

	resp, err := httpclient.PostJSON(ctx, a.client, url, paymentStatusRequest{
		CheckoutRequestID: checkoutRequestID,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body paymentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode payment status response: %w", err)
	}

	return mapResultCode(body), nil
}

// mapResultCode converts the gateway's result codes into session outcomes.
// Codes follow the Daraja taxonomy: 0 success, 1 insufficient funds,
// 1032 cancelled by user, 1037 timeout, 2001 wrong PIN. A poll answered
// before the customer acted carries no result code yet and stays pending.
func mapResultCode(body paymentStatusResponse) *domain.Outcome {
	switch body.ResultCode {
	case "", "500.001.1001":
		return &domain.Outcome{State: domain.StateStkSent, Message: body.ResultDesc}
	case "0":
		return &domain.Outcome{
			State:   domain.StateConfirmed,
			Message: body.ResultDesc,
			Evidence: &domain.Evidence{
				ReceiptNumber:   body.MpesaReceiptNumber,
				Amount:          body.Amount,
				PhoneNumber:     body.PhoneNumber,
				TransactionDate: parseTransactionDate(body.TransactionDate),
			},
		}
	case "1":
		return &domain.Outcome{State: domain.StateInsufficientFunds, Message: body.ResultDesc}
	case "1032":
		return &domain.Outcome{State: domain.StateCancelled, Message: body.ResultDesc}
	case "1037":
		return &domain.Outcome{State: domain.StateTimedOut, Message: body.ResultDesc}
	case "2001":
		return &domain.Outcome{State: domain.StateFailed, Message: body.ResultDesc}
	default:
		return &domain.Outcome{State: domain.StateFailed, Message: body.ResultDesc}
	}
}

// parseTransactionDate parses the gateway's yyyymmddhhmmss timestamp.
func parseTransactionDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse("20060102150405", raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// internal structs for mapping

// stkPushRequest is the gateway's STK push payload.
type stkPushRequest struct {
	// Phone is the customer's phone number.
	Phone string `json:"phone"`
	// Amount is the amount to charge in KES.
	Amount float64 `json:"amount"`
}

// stkPushResponse is the gateway's STK push response.
type stkPushResponse struct {
	// CheckoutRequestID correlates the push with its confirmation.
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

// paymentStatusRequest is the gateway's status poll payload.
type paymentStatusRequest struct {
	// CheckoutRequestID identifies the payment attempt being polled.
	CheckoutRequestID string `json:"CheckoutRequestId"`
}

// paymentStatusResponse is the gateway's status poll response.
type paymentStatusResponse struct {
	// ResultCode is the gateway's numeric outcome code as a string.
	ResultCode string `json:"ResultCode"`
	// ResultDesc is the gateway's human-readable description.
	ResultDesc string `json:"ResultDesc"`
	// MpesaReceiptNumber is present for settled payments.
	MpesaReceiptNumber string `json:"MpesaReceiptNumber"`
	// Amount is the settled amount.
	Amount float64 `json:"Amount"`
	// PhoneNumber is the charged number.
	PhoneNumber string `json:"PhoneNumber"`
	// TransactionDate is the settlement timestamp (yyyymmddhhmmss).
	TransactionDate string `json:"TransactionDate"`
}
