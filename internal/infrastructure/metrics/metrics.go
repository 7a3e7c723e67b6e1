package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Gateway metrics
	GatewayRequests *prometheus.CounterVec
	GatewayRetries  prometheus.Counter
	GatewayDuration prometheus.Histogram
	NormalizeErrors prometheus.Counter

	// Detail cache metrics
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheInvalidations prometheus.Counter

	// Preloader metrics
	PreloadCycles    *prometheus.CounterVec
	PreloadBatchSize prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		GatewayRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxreport_gateway_requests_total",
				Help: "Total gateway executions by outcome",
			},
			[]string{"outcome"},
		),
		GatewayRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fxreport_gateway_retries_total",
			Help: "Total gateway retry attempts",
		}),
		GatewayDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxreport_gateway_duration_seconds",
			Help:    "Duration of gateway executions including retries",
			Buckets: prometheus.DefBuckets,
		}),
		NormalizeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fxreport_normalize_errors_total",
			Help: "Total responses with an unrecognized envelope shape",
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fxreport_detail_cache_hits_total",
			Help: "Total detail cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fxreport_detail_cache_misses_total",
			Help: "Total detail cache misses",
		}),
		CacheInvalidations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fxreport_detail_cache_invalidations_total",
			Help: "Total full cache invalidations on selection change",
		}),

		PreloadCycles: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxreport_preload_cycles_total",
				Help: "Total preload cycles by outcome",
			},
			[]string{"outcome"},
		),
		PreloadBatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxreport_preload_batch_size",
			Help:    "Accounts fetched per preload cycle",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
}
