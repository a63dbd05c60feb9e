// Package metrics provides Prometheus metric collectors for bikeshare-go components
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DatasetMetrics contains Prometheus metrics for dataset load operations
type DatasetMetrics struct {
	loadsTotal      prometheus.Counter
	loadErrorsTotal prometheus.Counter
	loadDuration    prometheus.Histogram
	rowsGauge       prometheus.Gauge

	// collectors is a slice of all collectors for easier iteration
	collectors []prometheus.Collector
}

// NewDatasetMetrics creates and registers new dataset metrics
func NewDatasetMetrics(registry *prometheus.Registry) (*DatasetMetrics, error) {
	m := &DatasetMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DatasetMetrics) initMetrics() {
	m.loadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataset_loads_total",
		Help: "Total number of successful dataset loads",
	})

	m.loadErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dataset_load_errors_total",
		Help: "Total number of failed dataset loads",
	})

	m.loadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dataset_load_duration_seconds",
		Help:    "Time taken to read and enrich the dataset file",
		Buckets: prometheus.DefBuckets,
	})

	m.rowsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_rows",
		Help: "Number of rows in the loaded dataset",
	})

	m.collectors = []prometheus.Collector{
		m.loadsTotal,
		m.loadErrorsTotal,
		m.loadDuration,
		m.rowsGauge,
	}
}

// Describe implements the Collector interface
func (m *DatasetMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *DatasetMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordLoad records a successful dataset load
func (m *DatasetMetrics) RecordLoad(rows int, duration time.Duration) {
	m.loadsTotal.Inc()
	m.loadDuration.Observe(duration.Seconds())
	m.rowsGauge.Set(float64(rows))
}

// RecordLoadError records a failed dataset load
func (m *DatasetMetrics) RecordLoadError() {
	m.loadErrorsTotal.Inc()
}
