package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the credit workflow.
type Metrics struct {
	requestsCreated   *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	evaluations       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		requestsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prestabanco_credit_requests_created_total",
			Help: "Credit requests created, by property category.",
		}, []string{"category"}),
		statusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prestabanco_status_transitions_total",
			Help: "Request status transitions, by destination status code.",
		}, []string{"code"}),
		evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prestabanco_evaluations_total",
			Help: "Credit evaluations processed, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) RequestCreated(category string) {
	m.requestsCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) StatusChanged(code string) {
	m.statusTransitions.WithLabelValues(code).Inc()
}

func (m *Metrics) EvaluationCompleted(outcome string) {
	m.evaluations.WithLabelValues(outcome).Inc()
}
