// engine.go: recompute-on-demand entry point with snapshot memoization
package analytics

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tphakala/bikeshare-go/internal/dataset"
	"github.com/tphakala/bikeshare-go/internal/observability/metrics"
)

// Engine answers snapshot requests against the loaded dataset. Each filter
// change recomputes the full view catalog; identical filters within the TTL
// are served from cache because the underlying dataset never changes during
// the process lifetime.
type Engine struct {
	store     *dataset.Store
	snapshots *gocache.Cache
	metrics   *metrics.AnalyticsMetrics
}

// NewEngine creates an engine over the given store. A non-positive TTL keeps
// snapshots cached for the process lifetime. The metrics parameter may be
// nil, e.g. in tests.
func NewEngine(store *dataset.Store, snapshotTTL time.Duration, m *metrics.AnalyticsMetrics) *Engine {
	ttl := snapshotTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Engine{
		store:     store,
		snapshots: gocache.New(ttl, 10*time.Minute),
		metrics:   m,
	}
}

// Snapshot validates the filter, then returns the cached or freshly computed
// snapshot for it.
func (e *Engine) Snapshot(spec FilterSpec) (*Snapshot, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	key := spec.Key()
	if cached, found := e.snapshots.Get(key); found {
		if e.metrics != nil {
			e.metrics.RecordCacheHit()
		}
		return cached.(*Snapshot), nil
	}

	records, err := e.store.Enriched()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	snapshot := ComputeSnapshot(records, spec)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordCacheMiss()
		e.metrics.RecordSnapshot(snapshot.Rows, elapsed)
	}

	analyticsLogger.Debug("snapshot computed",
		"filter", key,
		"rows", snapshot.Rows,
		"duration_ms", elapsed.Milliseconds(),
	)

	e.snapshots.Set(key, snapshot, gocache.DefaultExpiration)
	return snapshot, nil
}

// Meta exposes the dataset summary for filter widget population.
func (e *Engine) Meta() (dataset.Meta, error) {
	return e.store.Meta()
}

// Flush drops every cached snapshot. Called when the dataset store is
// invalidated and reloaded.
func (e *Engine) Flush() {
	e.snapshots.Flush()
}
