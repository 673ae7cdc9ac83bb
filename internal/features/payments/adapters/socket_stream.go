package adapters

import (
	"context"
	"fmt"
	"sync"

	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/features/payments/domain"
	"arobisca-checkout/internal/features/payments/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SocketDialer implements the StreamDialer port over WebSocket.
type SocketDialer struct {
	// socketURL is the realtime channel endpoint.
	socketURL string
}

// NewSocketDialer creates a new SocketDialer for the given endpoint.
func NewSocketDialer(socketURL string) *SocketDialer {
	return &SocketDialer{
		socketURL: socketURL,
	}
}

// Dial connects to the realtime channel and registers for the given
// checkout request identifier.
func (d *SocketDialer) Dial(ctx context.Context, checkoutRequestID string) (ports.ConfirmationStream, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, d.socketURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial realtime channel: %w", err)
	}

	if err := conn.WriteJSON(registerMessage{
		Action:            "register",
		CheckoutRequestID: checkoutRequestID,
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to register checkout request: %w", err)
	}

	return &socketStream{
		conn:      conn,
		requestID: checkoutRequestID,
	}, nil
}

// socketStream reads payment outcomes from one WebSocket connection.
type socketStream struct {
	conn      *websocket.Conn
	requestID string

	closeOnce sync.Once
}

// Next blocks until the channel delivers the next outcome or the
// connection errors.
func (s *socketStream) Next() (*domain.Outcome, error) {
	var msg pushMessage
	if err := s.conn.ReadJSON(&msg); err != nil {
		return nil, fmt.Errorf("realtime channel read failed: %w", err)
	}

	return mapPushMessage(msg), nil
}

// Close tears the connection down. Safe to call more than once.
func (s *socketStream) Close() error {
	s.closeOnce.Do(func() {
		if err := s.conn.Close(); err != nil {
			logger.Named("payments").Debug("Realtime channel close failed",
				zap.String("checkout_request_id", s.requestID),
				zap.Error(err),
			)
		}
	})
	return nil
}

// mapPushMessage converts a realtime push into a session outcome. An
// unknown status maps to a pending outcome so the read loop keeps going.
func mapPushMessage(msg pushMessage) *domain.Outcome {
	switch msg.Status {
	case "success":
		return &domain.Outcome{
			State:   domain.StateConfirmed,
			Message: msg.Message,
			Evidence: &domain.Evidence{
				ReceiptNumber:   msg.Data.MpesaReceiptNumber,
				Amount:          msg.Data.Amount,
				PhoneNumber:     msg.Data.PhoneNumber,
				TransactionDate: parseTransactionDate(msg.Data.TransactionDate),
			},
		}
	case "cancelled":
		return &domain.Outcome{State: domain.StateCancelled, Message: msg.Message}
	case "insufficient":
		return &domain.Outcome{State: domain.StateInsufficientFunds, Message: msg.Message}
	case "failed":
		return &domain.Outcome{State: domain.StateFailed, Message: msg.Message}
	case "timedout":
		return &domain.Outcome{State: domain.StateTimedOut, Message: msg.Message}
	default:
		return &domain.Outcome{State: domain.StateStkSent, Message: msg.Message}
	}
}

// internal structs for mapping

// registerMessage subscribes the connection to one checkout request.
type registerMessage struct {
	// Action is always "register".
	Action string `json:"action"`
	// CheckoutRequestID is the request being watched.
	CheckoutRequestID string `json:"checkoutRequestId"`
}

// pushMessage is a payment event pushed by the realtime channel.
type pushMessage struct {
	// Status is the event status (success, cancelled, insufficient, failed, timedout).
	Status string `json:"status"`
	// Message is the gateway's human-readable description.
	Message string `json:"message"`
	// Data carries transaction evidence for success events.
	Data pushData `json:"data"`
}

// pushData is the transaction evidence inside a success push.
type pushData struct {
	// MpesaReceiptNumber is the M-Pesa receipt.
	MpesaReceiptNumber string `json:"MpesaReceiptNumber"`
	// Amount is the settled amount.
	Amount float64 `json:"Amount"`
	// PhoneNumber is the charged number.
	PhoneNumber string `json:"PhoneNumber"`
	// TransactionDate is the settlement timestamp (yyyymmddhhmmss).
	TransactionDate string `json:"TransactionDate"`
}
