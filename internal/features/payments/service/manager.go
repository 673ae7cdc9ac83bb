package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"arobisca-checkout/internal/core/logger"
	"arobisca-checkout/internal/core/metrics"
	"arobisca-checkout/internal/features/payments/domain"
	"arobisca-checkout/internal/features/payments/ports"

	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned when no payment session exists for the identifier.
	ErrSessionNotFound = errors.New("payment session not found")
	// ErrSessionFinished is returned when the session already settled and cannot be resent.
	ErrSessionFinished = errors.New("payment session already finished")
	// ErrResendCooldown is returned when a resend arrives before the cooldown elapsed.
	ErrResendCooldown = errors.New("stk resend is cooling down")
)

// ConfirmFunc is invoked exactly once when a session confirms, from
// whichever of the realtime push or the manual poll wins the race.
type ConfirmFunc func(requestID string, evidence domain.Evidence)

// Manager owns the in-memory registry of M-Pesa payment sessions and
// arbitrates between the realtime channel and the manual status poll.
type Manager struct {
	gateway  ports.Gateway
	dialer   ports.StreamDialer
	cooldown time.Duration
	metrics  *metrics.CheckoutMetrics
	log      *zap.Logger

	mu sync.Mutex
	// sessions maps every checkout request identifier a session has
	// carried (a resend adds a second key) to its entry.
	sessions map[string]*entry
}

// entry bundles a session with its open stream and confirm callback.
type entry struct {
	session   *domain.Session
	stream    ports.ConfirmationStream
	onConfirm ConfirmFunc
	lastSTKAt time.Time
}

// NewManager creates a payment session manager. metrics may be nil.
func NewManager(gateway ports.Gateway, dialer ports.StreamDialer, cooldown time.Duration, m *metrics.CheckoutMetrics) *Manager {
	return &Manager{
		gateway:  gateway,
		dialer:   dialer,
		cooldown: cooldown,
		metrics:  m,
		log:      logger.Named("payments"),
		sessions: make(map[string]*entry),
	}
}

// Initiate sends an STK push and starts tracking the session. The
// realtime channel is best effort: if the dial fails the session still
// works through manual status checks.
func (m *Manager) Initiate(ctx context.Context, phone string, amount float64, onConfirm ConfirmFunc) (domain.Snapshot, error) {
	requestID, err := m.gateway.InitiateSTK(ctx, phone, amount)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to initiate stk push: %w", err)
	}

	e := &entry{
		session:   domain.NewSession(requestID, phone, amount),
		onConfirm: onConfirm,
		lastSTKAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[requestID] = e
	m.mu.Unlock()

	m.metrics.SessionStarted()
	m.log.Info("Payment session started",
		zap.String("checkout_request_id", requestID),
		zap.Float64("amount", amount),
	)

	m.openStream(ctx, requestID, e)

	return e.session.Snapshot(), nil
}

// Get returns the session snapshot for the identifier.
func (m *Manager) Get(requestID string) (domain.Snapshot, error) {
	m.mu.Lock()
	e, ok := m.sessions[requestID]
	m.mu.Unlock()
	if !ok {
		return domain.Snapshot{}, ErrSessionNotFound
	}
	return e.session.Snapshot(), nil
}

// CheckStatus polls the gateway for the session's outcome and applies
// it through the same one-shot latch as the realtime channel, so a
// poll racing a push settles the session exactly once.
func (m *Manager) CheckStatus(ctx context.Context, requestID string) (domain.Snapshot, error) {
	m.mu.Lock()
	e, ok := m.sessions[requestID]
	m.mu.Unlock()
	if !ok {
		return domain.Snapshot{}, ErrSessionNotFound
	}

	snap := e.session.Snapshot()
	if snap.State.Terminal() {
		return snap, nil
	}

	outcome, err := m.gateway.QueryStatus(ctx, e.session.RequestID())
	if err != nil {
		return snap, fmt.Errorf("failed to query payment status: %w", err)
	}

	m.apply(requestID, e, outcome)
	return e.session.Snapshot(), nil
}

// Resend fires a fresh STK push for a session whose prompt was missed
// or failed. The session keeps its identity; the new checkout request
// identifier is mapped to the same entry so both resolve to it.
func (m *Manager) Resend(ctx context.Context, requestID string) (domain.Snapshot, error) {
	m.mu.Lock()
	e, ok := m.sessions[requestID]
	if !ok {
		m.mu.Unlock()
		return domain.Snapshot{}, ErrSessionNotFound
	}

	snap := e.session.Snapshot()
	if snap.State == domain.StateConfirmed {
		m.mu.Unlock()
		return snap, ErrSessionFinished
	}

	if remaining := m.cooldown - time.Since(e.lastSTKAt); remaining > 0 {
		m.mu.Unlock()
		return snap, fmt.Errorf("%w: retry in %ds", ErrResendCooldown, int(remaining.Seconds())+1)
	}

	// Reserve the cooldown slot before the network call so concurrent
	// resends do not double-fire.
	previousSTKAt := e.lastSTKAt
	e.lastSTKAt = time.Now()
	m.mu.Unlock()

	newID, err := m.gateway.InitiateSTK(ctx, snap.Phone, snap.Amount)
	if err != nil {
		m.mu.Lock()
		e.lastSTKAt = previousSTKAt
		m.mu.Unlock()
		return snap, fmt.Errorf("failed to resend stk push: %w", err)
	}

	m.closeStream(e)
	e.session.Resend(newID)

	m.mu.Lock()
	m.sessions[newID] = e
	m.mu.Unlock()

	m.metrics.STKResent(snap.State.Terminal())
	m.log.Info("STK push resent",
		zap.String("checkout_request_id", newID),
		zap.String("previous_request_id", requestID),
	)

	m.openStream(ctx, newID, e)

	return e.session.Snapshot(), nil
}

// Close tears a session down and forgets every identifier it carried.
func (m *Manager) Close(requestID string) error {
	m.mu.Lock()
	e, ok := m.sessions[requestID]
	if ok {
		for id, candidate := range m.sessions {
			if candidate == e {
				delete(m.sessions, id)
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	m.closeStream(e)
	if !e.session.Snapshot().State.Terminal() {
		m.metrics.SessionAbandoned()
	}

	m.log.Info("Payment session closed", zap.String("checkout_request_id", requestID))
	return nil
}

// openStream dials the realtime channel for the entry and starts the
// watch goroutine. Dial failures only degrade to manual polling.
func (m *Manager) openStream(ctx context.Context, requestID string, e *entry) {
	stream, err := m.dialer.Dial(ctx, requestID)
	if err != nil {
		m.log.Warn("Realtime channel unavailable, falling back to manual status checks",
			zap.String("checkout_request_id", requestID),
			zap.Error(err),
		)
		return
	}

	m.mu.Lock()
	e.stream = stream
	m.mu.Unlock()

	go m.watch(requestID, e, stream)
}

// watch reads the confirmation stream until a terminal outcome lands
// or the connection drops.
func (m *Manager) watch(requestID string, e *entry, stream ports.ConfirmationStream) {
	defer stream.Close()

	for {
		outcome, err := stream.Next()
		if err != nil {
			// A read error on a stream we already swapped out (resend) or
			// closed (terminal outcome) is expected; only an attached
			// stream dropping mid-session is worth a warning.
			m.mu.Lock()
			lost := e.stream == stream
			if lost {
				e.stream = nil
			}
			m.mu.Unlock()

			if lost && !e.session.Snapshot().State.Terminal() {
				m.log.Warn("Realtime channel lost, manual status checks still work",
					zap.String("checkout_request_id", requestID),
					zap.Error(err),
				)
			}
			return
		}

		if m.apply(requestID, e, outcome) {
			return
		}
	}
}

// apply settles an outcome on the session through its one-shot latch
// and reports whether the outcome was terminal. Only the winning writer
// triggers the confirm callback and metrics.
func (m *Manager) apply(requestID string, e *entry, outcome *domain.Outcome) bool {
	switch {
	case outcome.State == domain.StateConfirmed:
		if outcome.Evidence == nil {
			m.log.Warn("Confirmation without transaction evidence ignored",
				zap.String("checkout_request_id", requestID),
			)
			return false
		}
		if e.session.Confirm(*outcome.Evidence) {
			m.metrics.SessionConfirmed()
			m.closeStream(e)
			// A resend may have replaced the identifier the event arrived
			// on; the callback and registry always use the current one.
			currentID := e.session.RequestID()
			m.log.Info("Payment confirmed",
				zap.String("checkout_request_id", currentID),
				zap.String("receipt_number", outcome.Evidence.ReceiptNumber),
			)
			if e.onConfirm != nil {
				e.onConfirm(currentID, *outcome.Evidence)
			}
		}
		return true

	case outcome.State.Terminal():
		if e.session.Fail(outcome.State, outcome.Message) {
			m.metrics.SessionFailed(string(outcome.State))
			m.closeStream(e)
			m.log.Info("Payment attempt failed",
				zap.String("checkout_request_id", requestID),
				zap.String("state", string(outcome.State)),
				zap.String("message", outcome.Message),
			)
		}
		return true

	default:
		return false
	}
}

// closeStream detaches and closes the entry's current stream, if any.
func (m *Manager) closeStream(e *entry) {
	m.mu.Lock()
	stream := e.stream
	e.stream = nil
	m.mu.Unlock()

	if stream != nil {
		stream.Close()
	}
}
