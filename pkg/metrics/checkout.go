package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics records payment workflow counters.
type CheckoutMetrics struct {
	ordersCreated *prometheus.CounterVec
	webhookEvents *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created, by payment method.",
	}, []string{"payment_method"})
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stripe_webhook_events_total",
		Help: "Stripe webhook deliveries, by event type and outcome.",
	}, []string{"type", "outcome"})
	reg.MustRegister(ordersCreated, webhookEvents)
	return &CheckoutMetrics{
		ordersCreated: ordersCreated,
		webhookEvents: webhookEvents,
	}
}

// IncOrderCreated increments the order counter for the payment method.
func (m *CheckoutMetrics) IncOrderCreated(paymentMethod string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncWebhookEvent increments the webhook counter for the event type and outcome.
func (m *CheckoutMetrics) IncWebhookEvent(eventType, outcome string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
