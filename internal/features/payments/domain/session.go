package domain

import (
	"sync"
	"time"
)

// SessionState represents the state of an M-Pesa payment attempt.
type SessionState string

const (
	// StateIdle means no STK push has been sent yet.
	StateIdle SessionState = "idle"
	// StateStkSent means the prompt is on the customer's phone awaiting a PIN.
	StateStkSent SessionState = "stk_sent"
	// StateConfirmed means the gateway settled the payment.
	StateConfirmed SessionState = "confirmed"
	// StateCancelled means the customer dismissed the prompt.
	StateCancelled SessionState = "cancelled"
	// StateInsufficientFunds means the wallet balance could not cover the amount.
	StateInsufficientFunds SessionState = "insufficient_funds"
	// StateFailed means the gateway rejected the payment for another reason.
	StateFailed SessionState = "failed"
	// StateTimedOut means the prompt expired without a PIN entry.
	StateTimedOut SessionState = "timed_out"
)

// Terminal reports whether the state ends the payment attempt.
func (s SessionState) Terminal() bool {
	switch s {
	case StateConfirmed, StateCancelled, StateInsufficientFunds, StateFailed, StateTimedOut:
		return true
	}
	return false
}

// Evidence captures the proof of a settled M-Pesa transaction.
type Evidence struct {
	// ReceiptNumber is the M-Pesa receipt for the transaction.
	ReceiptNumber string `json:"receiptNumber"`
	// Amount is the amount that was charged.
	Amount float64 `json:"amount"`
	// PhoneNumber is the number the payment was charged to.
	PhoneNumber string `json:"phoneNumber"`
	// TransactionDate is when the gateway settled the payment.
	TransactionDate time.Time `json:"transactionDate"`
}

// Outcome is a normalized payment event from either the realtime
// channel or the manual status poll. A non-terminal State means the
// attempt is still pending.
type Outcome struct {
	// State is the session state the event maps to.
	State SessionState
	// Message is the gateway's human-readable description.
	Message string
	// Evidence is present only when State is StateConfirmed.
	Evidence *Evidence
}

// Session tracks one M-Pesa payment attempt. The confirmation is a
// one-shot latch: the realtime push and the manual poll both race to
// confirm, and only the first writer wins. All methods are safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	// requestID is the current checkout request identifier. A resend
	// replaces it with the fresh identifier from the gateway.
	requestID string
	phone     string
	amount    float64

	state          SessionState
	failureMessage string
	evidence       *Evidence
	startedAt      time.Time
}

// NewSession creates a session in the stk_sent state for the given
// checkout request identifier.
func NewSession(requestID, phone string, amount float64) *Session {
	return &Session{
		requestID: requestID,
		phone:     phone,
		amount:    amount,
		state:     StateStkSent,
		startedAt: time.Now(),
	}
}

// Confirm transitions stk_sent -> confirmed and records the evidence.
// It returns true only for the first caller; later confirmations and
// confirmations after a terminal failure are ignored.
func (s *Session) Confirm(ev Evidence) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStkSent {
		return false
	}

	s.state = StateConfirmed
	s.evidence = &ev
	return true
}

// Fail transitions stk_sent -> the given failure state. Transitions to
// non-failure states or from terminal states are ignored.
func (s *Session) Fail(state SessionState, message string) bool {
	if !state.Terminal() || state == StateConfirmed {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStkSent {
		return false
	}

	s.state = state
	s.failureMessage = message
	return true
}

// Resend returns a failed attempt to stk_sent under a fresh checkout
// request identifier. A confirmed session cannot be resent; a pending
// one just adopts the new identifier.
func (s *Session) Resend(newRequestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateConfirmed {
		return false
	}

	s.requestID = newRequestID
	s.state = StateStkSent
	s.failureMessage = ""
	return true
}

// RequestID returns the current checkout request identifier.
func (s *Session) RequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestID
}

// Snapshot is a point-in-time view of a session for API responses.
type Snapshot struct {
	// RequestID is the current checkout request identifier.
	RequestID string `json:"checkoutRequestId"`
	// Phone is the number the STK push was sent to.
	Phone string `json:"phone"`
	// Amount is the amount being charged.
	Amount float64 `json:"amount"`
	// State is the current session state.
	State SessionState `json:"state"`
	// FailureMessage is the gateway message for a failed attempt.
	FailureMessage string `json:"failureMessage,omitempty"`
	// Evidence is the settlement proof for a confirmed attempt.
	Evidence *Evidence `json:"evidence,omitempty"`
	// StartedAt is when the attempt began.
	StartedAt time.Time `json:"startedAt"`
}

// Snapshot returns a copy of the session's current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		RequestID:      s.requestID,
		Phone:          s.phone,
		Amount:         s.amount,
		State:          s.state,
		FailureMessage: s.failureMessage,
		Evidence:       s.evidence,
		StartedAt:      s.startedAt,
	}
}
