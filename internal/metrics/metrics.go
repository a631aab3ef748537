// Package metrics provides Prometheus metrics for photoquery
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for photoquery
type Metrics struct {
	// Find bar metrics
	EditsTotal          *prometheus.CounterVec
	DebounceRearmsTotal prometheus.Counter
	BuildsTotal         *prometheus.CounterVec
	BuildDuration       prometheus.Histogram
	FiltersAppliedTotal prometheus.Counter

	// HTTP query metrics
	QueryRequestsTotal    *prometheus.CounterVec
	QueryRequestDuration  prometheus.Histogram
	QueryRequestsInFlight prometheus.Gauge

	// Catalog metrics
	CatalogPhotos prometheus.Gauge
	CatalogTags   prometheus.Gauge

	// Server metrics
	ServerUptimeSeconds prometheus.Gauge
	ServerStartTime     time.Time
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	m.EditsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoquery_edits_total",
			Help: "Total number of find bar edit events",
		},
		[]string{"kind"},
	)

	m.DebounceRearmsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "photoquery_debounce_rearms_total",
			Help: "Total number of pending rebuilds postponed by a further edit",
		},
	)

	m.BuildsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoquery_builds_total",
			Help: "Total number of query builds by outcome",
		},
		[]string{"outcome"},
	)

	m.BuildDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photoquery_build_duration_seconds",
			Help:    "Duration of query builds in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
	)

	m.FiltersAppliedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "photoquery_filters_applied_total",
			Help: "Total number of filters handed to the collection",
		},
	)

	m.QueryRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photoquery_query_requests_total",
			Help: "Total number of /query requests",
		},
		[]string{"status"},
	)

	m.QueryRequestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photoquery_query_request_duration_seconds",
			Help:    "Duration of /query requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.QueryRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "photoquery_query_requests_in_flight",
			Help: "Number of /query requests currently being processed",
		},
	)

	m.CatalogPhotos = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "photoquery_catalog_photos",
			Help: "Number of photos in the catalog",
		},
	)

	m.CatalogTags = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "photoquery_catalog_tags",
			Help: "Number of tags in the catalog",
		},
	)

	m.ServerUptimeSeconds = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "photoquery_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
	)

	return m
}

// RunUptime updates the uptime gauge until stop is closed
func (m *Metrics) RunUptime(stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.ServerUptimeSeconds.Set(time.Since(m.ServerStartTime).Seconds())
		}
	}
}

// ObserveEdit counts a find bar edit
func (m *Metrics) ObserveEdit(kind string) {
	m.EditsTotal.WithLabelValues(kind).Inc()
}

// ObserveRearm counts a postponed rebuild
func (m *Metrics) ObserveRearm() {
	m.DebounceRearmsTotal.Inc()
}

// ObserveBuild records a query build with its outcome
func (m *Metrics) ObserveBuild(outcome string, duration time.Duration) {
	m.BuildsTotal.WithLabelValues(outcome).Inc()
	m.BuildDuration.Observe(duration.Seconds())
}

// ObserveFilterApplied counts a filter handed to the collection
func (m *Metrics) ObserveFilterApplied() {
	m.FiltersAppliedTotal.Inc()
}

// RecordQueryRequest records a /query request with its status
func (m *Metrics) RecordQueryRequest(status string, duration time.Duration) {
	m.QueryRequestsTotal.WithLabelValues(status).Inc()
	m.QueryRequestDuration.Observe(duration.Seconds())
}

// UpdateCatalogStats updates catalog statistics
func (m *Metrics) UpdateCatalogStats(photos, tags int) {
	m.CatalogPhotos.Set(float64(photos))
	m.CatalogTags.Set(float64(tags))
}
