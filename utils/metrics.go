package utils

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the chatbot and booking flows.
type Metrics struct {
	intentsTotal  *prometheus.CounterVec
	llmCallsTotal *prometheus.CounterVec
	llmLatency    *prometheus.HistogramVec
	bookingsTotal *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		intentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "curabot",
			Subsystem: "chatbot",
			Name:      "intents_total",
			Help:      "Classified chatbot messages by intent",
		}, []string{"intent"}),
		llmCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "curabot",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Completion service calls by purpose and outcome",
		}, []string{"purpose", "outcome"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "curabot",
			Subsystem: "llm",
			Name:      "call_latency_seconds",
			Help:      "Latency of completion service calls including retries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"purpose"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "curabot",
			Subsystem: "booking",
			Name:      "operations_total",
			Help:      "Booking and cancellation attempts by outcome",
		}, []string{"operation", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.intentsTotal, m.llmCallsTotal, m.llmLatency, m.bookingsTotal)
	return m
}

func (m *Metrics) ObserveIntent(intent string) {
	if m == nil {
		return
	}
	m.intentsTotal.WithLabelValues(intent).Inc()
}

func (m *Metrics) ObserveLLMCall(purpose, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.llmCallsTotal.WithLabelValues(purpose, outcome).Inc()
	m.llmLatency.WithLabelValues(purpose).Observe(seconds)
}

func (m *Metrics) ObserveBooking(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(operation, outcome).Inc()
}
