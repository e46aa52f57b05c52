package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order outcomes and per-step pipeline failures.
type CheckoutMetrics struct {
	ordersCreated prometheus.Counter
	stepFailures  *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders successfully created at checkout.",
	})
	stepFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_step_failures_total",
		Help: "Failures per checkout pipeline step.",
	}, []string{"step"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_pipeline_duration_seconds",
		Help:    "Duration of the order creation pipeline in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(ordersCreated, stepFailures, duration)
	return &CheckoutMetrics{
		ordersCreated: ordersCreated,
		stepFailures:  stepFailures,
		duration:      duration,
	}
}

// IncOrderCreated increments the created-order counter.
func (c *CheckoutMetrics) IncOrderCreated() {
	if c == nil || c.ordersCreated == nil {
		return
	}
	c.ordersCreated.Inc()
}

// IncStepFailure increments the failure counter for the named pipeline step.
func (c *CheckoutMetrics) IncStepFailure(step string) {
	if c == nil || c.stepFailures == nil {
		return
	}
	if step == "" {
		step = "unknown"
	}
	c.stepFailures.WithLabelValues(step).Inc()
}

// ObserveDuration records how long the pipeline took.
func (c *CheckoutMetrics) ObserveDuration(d time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.Observe(d.Seconds())
}
