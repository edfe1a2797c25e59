package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangulnum_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hangulnum_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangulnum_rate_limit_hits_total",
		Help: "Total rate limit rejections by surface",
	}, []string{"surface"})

	RateLimitTrackedKeys = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hangulnum_rate_limit_tracked_keys",
		Help: "Clients with events inside the rate limit window, sampled after each cleanup",
	}, []string{"surface"})
)

// Conversion metrics, shared by every front-end.
var (
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangulnum_conversions_total",
		Help: "Conversions by direction, surface, and result",
	}, []string{"direction", "surface", "result"})

	HistoryWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hangulnum_history_writes_total",
		Help: "Conversion history inserts by result",
	}, []string{"result"})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangulnum_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangulnum_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangulnum_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hangulnum_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)

// ObserveConversion records the outcome of one encode or decode call.
func ObserveConversion(direction, surface string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ConversionsTotal.WithLabelValues(direction, surface, result).Inc()
}
