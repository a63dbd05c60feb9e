// store.go: process-lifetime cache of the loaded and enriched dataset
package dataset

import (
	"sort"
	"sync"
	"time"

	"github.com/tphakala/bikeshare-go/internal/conf"
	"github.com/tphakala/bikeshare-go/internal/errors"
	"github.com/tphakala/bikeshare-go/internal/observability/metrics"
)

// ErrNotLoaded is returned by accessors before a successful Load.
var ErrNotLoaded = errors.NewStd("dataset not loaded")

// Meta summarizes the loaded dataset for filter widget population.
type Meta struct {
	Rows      int       `json:"rows"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Years     []int     `json:"years"`
	Seasons   []string  `json:"seasons"`
	Weather   []string  `json:"weather"`
}

// Store loads the rental dataset once per process lifetime and keeps the raw
// and enriched records immutable thereafter. Callers must treat the returned
// slices as read-only; concurrent readers are safe because nothing mutates
// them after Load.
type Store struct {
	mu       sync.RWMutex
	settings *conf.Settings
	metrics  *metrics.DatasetMetrics

	raw      []RentalRecord
	enriched []EnrichedRecord
	meta     Meta
	loaded   bool
	loadedAt time.Time
}

// NewStore creates a store for the dataset described in settings. The metrics
// parameter may be nil, e.g. in tests.
func NewStore(settings *conf.Settings, m *metrics.DatasetMetrics) *Store {
	return &Store{
		settings: settings,
		metrics:  m,
	}
}

// Load reads and enriches the dataset file. The first successful call caches
// the result; further calls are no-ops until Invalidate. A failed load leaves
// the store empty so the process can refuse to start.
func (s *Store) Load() error {
	s.mu.RLock()
	if s.loaded {
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	start := time.Now()

	separator, err := s.settings.Dataset.SeparatorRune()
	if err != nil {
		return errors.New(err).
			Component("dataset").
			Category(errors.CategoryConfiguration).
			Build()
	}

	raw, err := ReadFile(s.settings.Dataset.Path, separator, s.settings.Dataset.StrictTotals)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLoadError()
		}
		return err
	}

	enriched, err := Enrich(raw)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLoadError()
		}
		return err
	}

	s.raw = raw
	s.enriched = enriched
	s.meta = buildMeta(enriched)
	s.loaded = true
	s.loadedAt = time.Now()

	if s.metrics != nil {
		s.metrics.RecordLoad(len(raw), time.Since(start))
	}

	datasetLogger.Info("dataset loaded",
		"path", s.settings.Dataset.Path,
		"rows", len(raw),
		"start_date", s.meta.StartDate.Format("2006-01-02"),
		"end_date", s.meta.EndDate.Format("2006-01-02"),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

// Enriched returns the enriched records. Load must have succeeded first.
func (s *Store) Enriched() ([]EnrichedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.enriched, nil
}

// Raw returns the raw records. Load must have succeeded first.
func (s *Store) Raw() ([]RentalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.raw, nil
}

// Meta returns summary information about the loaded dataset.
func (s *Store) Meta() (Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return Meta{}, ErrNotLoaded
	}
	return s.meta, nil
}

// LoadedAt returns when the dataset was loaded, zero if it has not been.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Invalidate clears the cached dataset so the next Load re-reads the file.
// Intended for tests and explicit reload commands.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = nil
	s.enriched = nil
	s.meta = Meta{}
	s.loaded = false
	s.loadedAt = time.Time{}
	datasetLogger.Info("dataset cache invalidated")
}

// buildMeta derives the filter widget options from the enriched records.
// Season and weather labels keep their canonical order, filtered to the
// labels actually present; years are ascending.
func buildMeta(enriched []EnrichedRecord) Meta {
	meta := Meta{Rows: len(enriched)}

	yearSet := make(map[int]struct{})
	seasonSet := make(map[string]struct{})
	weatherSet := make(map[string]struct{})

	for i := range enriched {
		r := &enriched[i]
		if meta.StartDate.IsZero() || r.Date.Before(meta.StartDate) {
			meta.StartDate = r.Date
		}
		if r.Date.After(meta.EndDate) {
			meta.EndDate = r.Date
		}
		yearSet[r.Year] = struct{}{}
		seasonSet[r.SeasonLabel] = struct{}{}
		weatherSet[r.WeatherLabel] = struct{}{}
	}

	for year := range yearSet {
		meta.Years = append(meta.Years, year)
	}
	sort.Ints(meta.Years)

	for _, label := range SeasonOrder() {
		if _, ok := seasonSet[label]; ok {
			meta.Seasons = append(meta.Seasons, label)
		}
	}
	for _, label := range WeatherOrder() {
		if _, ok := weatherSet[label]; ok {
			meta.Weather = append(meta.Weather, label)
		}
	}

	return meta
}
