package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics groups the Prometheus collectors for the checkout flow.
type CheckoutMetrics struct {
	sessionsStarted   prometheus.Counter
	sessionsConfirmed prometheus.Counter
	sessionsFailed    *prometheus.CounterVec
	stkResends        prometheus.Counter
	ordersSubmitted   prometheus.Counter
	orderFailures     prometheus.Counter
	activeSessions    prometheus.Gauge
}

// New creates checkout metrics registered on the default registerer.
func New() *CheckoutMetrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates checkout metrics registered on the given registerer.
// A nil registerer falls back to the default one.
func NewWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		sessionsStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_payment_sessions_started_total",
			Help: "Total number of STK push payment sessions started",
		}),
		sessionsConfirmed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_payment_sessions_confirmed_total",
			Help: "Total number of payment sessions confirmed",
		}),
		sessionsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "checkout_payment_sessions_failed_total",
			Help: "Total number of payment sessions ending in a failure state",
		}, []string{"state"}),
		stkResends: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_stk_resends_total",
			Help: "Total number of STK push resends",
		}),
		ordersSubmitted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_submitted_total",
			Help: "Total number of orders submitted to the store API",
		}),
		orderFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_order_failures_total",
			Help: "Total number of failed order submissions",
		}),
		activeSessions: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "checkout_active_payment_sessions",
			Help: "Number of payment sessions currently awaiting confirmation",
		}),
	}
}

// SessionStarted records a new payment session.
func (m *CheckoutMetrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
	m.activeSessions.Inc()
}

// SessionConfirmed records a confirmed payment session.
func (m *CheckoutMetrics) SessionConfirmed() {
	if m == nil {
		return
	}
	m.sessionsConfirmed.Inc()
	m.activeSessions.Dec()
}

// SessionFailed records a payment session ending in the given failure state.
func (m *CheckoutMetrics) SessionFailed(state string) {
	if m == nil {
		return
	}
	m.sessionsFailed.WithLabelValues(state).Inc()
	m.activeSessions.Dec()
}

// STKResent records an STK push resend. reactivated is true when the
// resend revived a session that had already reached a failure state.
func (m *CheckoutMetrics) STKResent(reactivated bool) {
	if m == nil {
		return
	}
	m.stkResends.Inc()
	if reactivated {
		m.activeSessions.Inc()
	}
}

// SessionAbandoned records a pending session torn down before any outcome.
func (m *CheckoutMetrics) SessionAbandoned() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// OrderSubmitted records a successful order submission.
func (m *CheckoutMetrics) OrderSubmitted() {
	if m == nil {
		return
	}
	m.ordersSubmitted.Inc()
}

// OrderFailed records a failed order submission.
func (m *CheckoutMetrics) OrderFailed() {
	if m == nil {
		return
	}
	m.orderFailures.Inc()
}

// registerCounter registers a counter, reusing the existing collector if already registered.
func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

// registerCounterVec registers a counter vector, reusing the existing collector if already registered.
func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

// registerGauge registers a gauge, reusing the existing collector if already registered.
func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	if err := registerer.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if ok := asAlreadyRegistered(err, &are); ok {
			return are.ExistingCollector.(prometheus.Gauge)
		}
		panic(err)
	}
	return g
}

func asAlreadyRegistered(err error, target *prometheus.AlreadyRegisteredError) bool {
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		*target = are
		return true
	}
	return false
}
