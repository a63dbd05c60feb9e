// Package observability provides metrics and monitoring capabilities for the bikeshare-go application.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tphakala/bikeshare-go/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry  *prometheus.Registry
	Dataset   *metrics.DatasetMetrics
	Analytics *metrics.AnalyticsMetrics
	HTTP      *metrics.HTTPMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
// It returns an error if any metric collector fails to initialize.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	datasetMetrics, err := metrics.NewDatasetMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset metrics: %w", err)
	}

	analyticsMetrics, err := metrics.NewAnalyticsMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics metrics: %w", err)
	}

	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	return &Metrics{
		registry:  registry,
		Dataset:   datasetMetrics,
		Analytics: analyticsMetrics,
		HTTP:      httpMetrics,
	}, nil
}

// Handler returns an http.Handler serving the metrics registry in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
