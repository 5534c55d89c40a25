package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the assistant.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RouteOutcomes    *prometheus.CounterVec
	ModelCalls       *prometheus.CounterVec
	RateLimitRetries prometheus.Counter
	RecordsAppended  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RouteOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_outcomes_total",
			Help:      "Routed utterances by outcome.",
		}, []string{"outcome"}),
		ModelCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Model calls by call site and result.",
		}, []string{"call", "result"}),
		RateLimitRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_retries_total",
			Help:      "Model calls retried after a rate-limit response.",
		}),
		RecordsAppended: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Records appended to the store by kind.",
		}, []string{"kind"}),
	}
}

func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.RouteOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveModelCall(call string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ModelCalls.WithLabelValues(call, result).Inc()
}

func (m *Metrics) ObserveRateLimitRetry() {
	if m == nil {
		return
	}
	m.RateLimitRetries.Inc()
}

func (m *Metrics) ObserveAppend(kind string) {
	if m == nil {
		return
	}
	m.RecordsAppended.WithLabelValues(kind).Inc()
}

func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
