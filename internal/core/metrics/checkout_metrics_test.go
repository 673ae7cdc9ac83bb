package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckoutMetrics_Counters verifies counter and gauge movements.
func TestCheckoutMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)
	require.NotNil(t, m)

	m.SessionStarted()
	m.SessionStarted()
	m.SessionConfirmed()
	m.SessionFailed("insufficient_funds")
	m.OrderSubmitted()
	m.OrderFailed()
	m.STKResent(true)
	m.SessionAbandoned()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.sessionsStarted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsConfirmed))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sessionsFailed.WithLabelValues("insufficient_funds")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ordersSubmitted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.orderFailures))
	// 2 started + 1 reactivating resend - 1 confirmed - 1 failed - 1 abandoned
	assert.Equal(t, float64(0), testutil.ToFloat64(m.activeSessions))
}

// TestCheckoutMetrics_DoubleRegister verifies that re-registering reuses collectors.
func TestCheckoutMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewWithRegisterer(reg)
	second := NewWithRegisterer(reg)

	first.OrderSubmitted()
	second.OrderSubmitted()

	assert.Equal(t, float64(2), testutil.ToFloat64(first.ordersSubmitted))
}

// TestCheckoutMetrics_NilReceiver verifies that a nil metrics instance is a no-op.
func TestCheckoutMetrics_NilReceiver(t *testing.T) {
	var m *CheckoutMetrics
	m.SessionStarted()
	m.SessionConfirmed()
	m.SessionFailed("failed")
	m.STKResent(false)
	m.SessionAbandoned()
	m.OrderSubmitted()
	m.OrderFailed()
}
