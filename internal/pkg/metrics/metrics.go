package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics exposes counters/histograms for the booking wizard and its HTTP surface.
type CheckoutMetrics struct {
	stepTransitions  *prometheus.CounterVec
	promoValidations *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	submitLatency    prometheus.Histogram
	storageFailures  *prometheus.CounterVec
	usageIncrements  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	m := &CheckoutMetrics{
		stepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "wizard",
			Name:      "step_transitions_total",
			Help:      "Wizard navigation attempts by direction and outcome",
		}, []string{"direction", "outcome"}),
		promoValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "wizard",
			Name:      "promo_validations_total",
			Help:      "Promo code validation attempts by outcome",
		}, []string{"outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "wizard",
			Name:      "create_booking_latency_seconds",
			Help:      "Latency of the external create booking call",
			Buckets:   prometheus.DefBuckets,
		}),
		storageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "draft",
			Name:      "storage_failures_total",
			Help:      "Draft storage failures swallowed by the draft store",
		}, []string{"op"}),
		usageIncrements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "wizard",
			Name:      "promotion_usage_increments_total",
			Help:      "Best-effort promotion usage increments by outcome",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.stepTransitions,
		m.promoValidations,
		m.submissions,
		m.submitLatency,
		m.storageFailures,
		m.usageIncrements,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

func (m *CheckoutMetrics) ObserveStep(direction string, ok bool) {
	if m == nil {
		return
	}
	m.stepTransitions.WithLabelValues(direction, outcome(ok)).Inc()
}

func (m *CheckoutMetrics) ObservePromoValidation(result string) {
	if m == nil {
		return
	}
	m.promoValidations.WithLabelValues(result).Inc()
}

func (m *CheckoutMetrics) ObserveSubmission(result string, seconds float64) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
	if seconds > 0 {
		m.submitLatency.Observe(seconds)
	}
}

func (m *CheckoutMetrics) ObserveStorageFailure(op string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(op).Inc()
}

func (m *CheckoutMetrics) ObserveUsageIncrement(ok bool) {
	if m == nil {
		return
	}
	m.usageIncrements.WithLabelValues(outcome(ok)).Inc()
}

func (m *CheckoutMetrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(seconds)
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
