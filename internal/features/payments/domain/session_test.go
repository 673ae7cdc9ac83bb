package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvidence() Evidence {
	return Evidence{
		ReceiptNumber:   "QHX12ABC34",
		Amount:          1200,
		PhoneNumber:     "254712345678",
		TransactionDate: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

// TestSessionState_Terminal verifies the terminal-state classification.
func TestSessionState_Terminal(t *testing.T) {
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateStkSent.Terminal())
	assert.True(t, StateConfirmed.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.True(t, StateInsufficientFunds.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateTimedOut.Terminal())
}

// TestSession_Confirm verifies the one-shot confirmation latch.
func TestSession_Confirm(t *testing.T) {
	s := NewSession("ws_CO_1", "254712345678", 1200)

	assert.True(t, s.Confirm(testEvidence()))
	assert.False(t, s.Confirm(testEvidence()), "second confirmation must lose the race")

	snap := s.Snapshot()
	assert.Equal(t, StateConfirmed, snap.State)
	require.NotNil(t, snap.Evidence)
	assert.Equal(t, "QHX12ABC34", snap.Evidence.ReceiptNumber)
}

// TestSession_Fail verifies failure transitions and their guards.
func TestSession_Fail(t *testing.T) {
	t.Run("FromStkSent", func(t *testing.T) {
		s := NewSession("ws_CO_1", "254712345678", 1200)
		assert.True(t, s.Fail(StateInsufficientFunds, "The balance is insufficient"))

		snap := s.Snapshot()
		assert.Equal(t, StateInsufficientFunds, snap.State)
		assert.Equal(t, "The balance is insufficient", snap.FailureMessage)
	})

	t.Run("AfterConfirm", func(t *testing.T) {
		s := NewSession("ws_CO_1", "254712345678", 1200)
		require.True(t, s.Confirm(testEvidence()))
		assert.False(t, s.Fail(StateTimedOut, "expired"))
		assert.Equal(t, StateConfirmed, s.Snapshot().State)
	})

	t.Run("NonFailureStateRejected", func(t *testing.T) {
		s := NewSession("ws_CO_1", "254712345678", 1200)
		assert.False(t, s.Fail(StateConfirmed, "not via Fail"))
		assert.False(t, s.Fail(StateStkSent, "not terminal"))
		assert.Equal(t, StateStkSent, s.Snapshot().State)
	})
}

// TestSession_ConfirmRace verifies that across concurrent confirmations
// exactly one caller wins.
func TestSession_ConfirmRace(t *testing.T) {
	s := NewSession("ws_CO_1", "254712345678", 1200)

	const racers = 16
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Confirm(testEvidence()) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins, "exactly one confirmation must win")
}

// TestSession_ConfirmVersusFailRace verifies a confirm/fail race leaves
// the session in exactly one terminal state.
func TestSession_ConfirmVersusFailRace(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := NewSession("ws_CO_1", "254712345678", 1200)

		var wg sync.WaitGroup
		var confirmed, failed bool
		wg.Add(2)
		go func() {
			defer wg.Done()
			confirmed = s.Confirm(testEvidence())
		}()
		go func() {
			defer wg.Done()
			failed = s.Fail(StateCancelled, "Request cancelled by user")
		}()
		wg.Wait()

		assert.True(t, confirmed != failed, "exactly one transition must win")
	}
}

// TestSession_Resend verifies resending adopts a fresh request identifier.
func TestSession_Resend(t *testing.T) {
	t.Run("AfterFailure", func(t *testing.T) {
		s := NewSession("ws_CO_1", "254712345678", 1200)
		require.True(t, s.Fail(StateTimedOut, "expired"))

		assert.True(t, s.Resend("ws_CO_2"))

		snap := s.Snapshot()
		assert.Equal(t, "ws_CO_2", snap.RequestID)
		assert.Equal(t, StateStkSent, snap.State)
		assert.Empty(t, snap.FailureMessage)
	})

	t.Run("AfterConfirmRejected", func(t *testing.T) {
		s := NewSession("ws_CO_1", "254712345678", 1200)
		require.True(t, s.Confirm(testEvidence()))

		assert.False(t, s.Resend("ws_CO_2"))
		assert.Equal(t, "ws_CO_1", s.RequestID())
	})
}
