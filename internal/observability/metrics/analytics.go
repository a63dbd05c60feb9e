package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalyticsMetrics contains Prometheus metrics for snapshot computation
type AnalyticsMetrics struct {
	snapshotsTotal   prometheus.Counter
	snapshotDuration prometheus.Histogram
	filteredRowsHist prometheus.Histogram
	cacheHitsTotal   prometheus.Counter
	cacheMissesTotal prometheus.Counter

	collectors []prometheus.Collector
}

// NewAnalyticsMetrics creates and registers new analytics metrics
func NewAnalyticsMetrics(registry *prometheus.Registry) (*AnalyticsMetrics, error) {
	m := &AnalyticsMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *AnalyticsMetrics) initMetrics() {
	m.snapshotsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_snapshots_total",
		Help: "Total number of snapshot computations",
	})

	m.snapshotDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analytics_snapshot_duration_seconds",
		Help:    "Time taken to filter the dataset and compute all aggregate views",
		Buckets: prometheus.DefBuckets,
	})

	m.filteredRowsHist = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analytics_filtered_rows",
		Help:    "Number of rows passing the filter per snapshot",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	m.cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_snapshot_cache_hits_total",
		Help: "Snapshot requests served from cache",
	})

	m.cacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_snapshot_cache_misses_total",
		Help: "Snapshot requests that required computation",
	})

	m.collectors = []prometheus.Collector{
		m.snapshotsTotal,
		m.snapshotDuration,
		m.filteredRowsHist,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
	}
}

// Describe implements the Collector interface
func (m *AnalyticsMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *AnalyticsMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordSnapshot records a computed snapshot
func (m *AnalyticsMetrics) RecordSnapshot(filteredRows int, duration time.Duration) {
	m.snapshotsTotal.Inc()
	m.snapshotDuration.Observe(duration.Seconds())
	m.filteredRowsHist.Observe(float64(filteredRows))
}

// RecordCacheHit records a snapshot served from cache
func (m *AnalyticsMetrics) RecordCacheHit() {
	m.cacheHitsTotal.Inc()
}

// RecordCacheMiss records a snapshot that had to be computed
func (m *AnalyticsMetrics) RecordCacheMiss() {
	m.cacheMissesTotal.Inc()
}
