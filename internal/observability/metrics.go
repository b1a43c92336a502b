package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the process-wide Prometheus collectors. A nil *Metrics is
// a no-op so pure computations can run without a registry in tests.
type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	forecastsComputed *prometheus.CounterVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	accuracyRecorded  prometheus.Counter
}

// NewMetrics builds and registers the collectors on the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		forecastsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_forecasts_computed_total",
			Help: "Total energy forecasts computed, by source type.",
		}, []string{"source"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forecast_cache_hits_total",
			Help: "Total forecast cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forecast_cache_misses_total",
			Help: "Total forecast cache misses observed.",
		}),
		accuracyRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forecast_accuracy_recorded_total",
			Help: "Total per-day forecast accuracy values recorded.",
		}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.forecastsComputed,
		m.cacheHits,
		m.cacheMisses,
		m.accuracyRecorded,
	)
	return m
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTP records one completed request.
func (m *Metrics) ObserveHTTP(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveForecastComputed records one freshly computed forecast.
func (m *Metrics) ObserveForecastComputed(source string) {
	if m == nil {
		return
	}
	m.forecastsComputed.WithLabelValues(source).Inc()
}

// ObserveForecastCache records one cache lookup.
func (m *Metrics) ObserveForecastCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveAccuracyRecorded records one accuracy write.
func (m *Metrics) ObserveAccuracyRecorded() {
	if m == nil {
		return
	}
	m.accuracyRecorded.Inc()
}
