package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinegraph_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinegraph_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// StrategyTotal counts which query strategy answered an operation.
	StrategyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinegraph_strategy_total",
			Help: "Total number of results per operation and strategy",
		},
		[]string{"operation", "method"},
	)

	StrategyFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinegraph_strategy_fallbacks_total",
			Help: "Total number of primary strategy failures",
		},
		[]string{"operation"},
	)

	GenAIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinegraph_genai_requests_total",
			Help: "Total number of generative AI calls",
		},
		[]string{"kind", "outcome"},
	)

	GenAIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinegraph_genai_request_duration_seconds",
			Help:    "Duration of generative AI calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)

	// 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinegraph_circuit_breaker_state",
			Help: "Circuit breaker state per upstream",
		},
		[]string{"name"},
	)

	EmbeddingFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinegraph_embedding_random_fallbacks_total",
			Help: "Total number of random vectors substituted for failed embeddings",
		},
	)
)

func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordStrategy(operation, method string, fellBack bool) {
	StrategyTotal.WithLabelValues(operation, method).Inc()
	if fellBack {
		StrategyFallbacks.WithLabelValues(operation).Inc()
	}
}

func RecordGenAI(kind string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	GenAIRequestsTotal.WithLabelValues(kind, outcome).Inc()
	GenAIRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
