package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Model calls dominate, so the tail is long.
	latencyBuckets = []float64{
		10, 25, 50,
		100, 250, 500,
		1000, 2500, 5000,
		10000, 30000, 60000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustchat_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"route", "method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustchat_request_latency_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	AnalysisTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustchat_analysis_total",
			Help: "Analysed messages by aggregated risk level",
		},
		[]string{"type", "risk_level"},
	)

	SourceLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustchat_source_latency_ms",
			Help:    "Analysis source latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"source"},
	)

	SourceFailures = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustchat_source_failures_total",
			Help: "Analysis source calls that failed, timed out or panicked",
		},
		[]string{"source"},
	)

	Connections = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trustchat_connections",
			Help: "Number of active websocket connections",
		},
		[]string{"route", "state"},
	)
)

type MetricsConfig struct {
	EnableLatency       bool
	EnableSourceMetrics bool
	EnableConnections   bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:       true,
		EnableSourceMetrics: true,
		EnableConnections:   false,
	}
}

var (
	Config      = DefaultMetricsConfig()
	runtimeOnce sync.Once
)

// Initialize applies cfg. Runtime collectors are registered once per process.
func Initialize(cfg MetricsConfig) {
	Config = cfg
	runtimeOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

// Handler serves the private registry in the exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry to tests.
func Gatherer() prometheus.Gatherer {
	return registry
}
