package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talentika/internal/application/payment/usecases"
)

const namespace = "talentika"

// PaymentMetrics counts invoice, webhook and activation outcomes.
type PaymentMetrics struct {
	invoices    *prometheus.CounterVec
	webhooks    *prometheus.CounterVec
	activations *prometheus.CounterVec
}

var _ usecases.PaymentMetrics = (*PaymentMetrics)(nil)

// NewPaymentMetrics registers the payment collectors on registerer, falling back to the
// default registerer when nil.
func NewPaymentMetrics(registerer prometheus.Registerer) *PaymentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &PaymentMetrics{
		invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "invoices_total",
			Help:      "Invoice creation attempts by outcome.",
		}, []string{"outcome"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "webhooks_total",
			Help:      "Gateway callbacks processed by outcome.",
		}, []string{"outcome"}),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "activations_total",
			Help:      "Subscription activation attempts for paid transactions by outcome.",
		}, []string{"outcome"}),
	}

	registerer.MustRegister(m.invoices, m.webhooks, m.activations)
	return m
}

func (m *PaymentMetrics) ObserveInvoice(outcome string) {
	m.invoices.WithLabelValues(outcome).Inc()
}

func (m *PaymentMetrics) ObserveWebhook(outcome string) {
	m.webhooks.WithLabelValues(outcome).Inc()
}

func (m *PaymentMetrics) ObserveActivation(outcome string) {
	m.activations.WithLabelValues(outcome).Inc()
}

// Handler exposes gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
