package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/bikeshare-go/internal/dataset"
)

func filterFixture(t *testing.T) []dataset.EnrichedRecord {
	t.Helper()
	return enrichRows(t, []rawRow{
		{ts: "2011-01-05 04:00:00", season: 1, weather: 1, workingDay: 1, temp: 8, humidity: 80, casual: 1, registered: 4},
		{ts: "2011-01-05 08:00:00", season: 1, weather: 2, workingDay: 1, temp: 10, humidity: 78, casual: 10, registered: 40},
		{ts: "2011-07-10 08:00:00", season: 3, weather: 1, workingDay: 0, temp: 30, humidity: 50, casual: 40, registered: 60},
		{ts: "2011-07-10 17:00:00", season: 3, weather: 3, workingDay: 0, temp: 28, humidity: 55, casual: 30, registered: 70},
		{ts: "2012-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 9, humidity: 82, casual: 5, registered: 25},
	})
}

func TestEmptyFilterPassesEverything(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)
	spec := NewFilterSpec()
	assert.Len(t, spec.Apply(rows), len(rows))
}

func TestDateRangeInclusive(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)
	spec := NewFilterSpec()
	spec.StartDate = mustDate(t, "2011-01-05")
	spec.EndDate = mustDate(t, "2011-07-10")

	filtered := spec.Apply(rows)
	assert.Len(t, filtered, 4, "both boundary dates are included")
}

func TestSingleDateBoundCollapsesToExactMatch(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)

	// Only a start bound: exact match on that date
	spec := NewFilterSpec()
	spec.StartDate = mustDate(t, "2011-07-10")
	filtered := spec.Apply(rows)
	require.Len(t, filtered, 2)
	for i := range filtered {
		assert.Equal(t, "2011-07-10", filtered[i].Date.Format("2006-01-02"))
	}

	// Only an end bound behaves the same way
	spec = NewFilterSpec()
	spec.EndDate = mustDate(t, "2011-07-10")
	assert.Len(t, spec.Apply(rows), 2)

	// Identical start and end bounds are equivalent to the exact-date filter
	spec = NewFilterSpec()
	spec.StartDate = mustDate(t, "2011-07-10")
	spec.EndDate = mustDate(t, "2011-07-10")
	assert.Len(t, spec.Apply(rows), 2)
}

func TestHourRangeInclusive(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)
	spec := NewFilterSpec()
	spec.HourMin = 8
	spec.HourMax = 17

	filtered := spec.Apply(rows)
	require.Len(t, filtered, 4)
	for i := range filtered {
		assert.GreaterOrEqual(t, filtered[i].Hour, 8)
		assert.LessOrEqual(t, filtered[i].Hour, 17)
	}
}

func TestCategoricalMembership(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)

	spec := NewFilterSpec()
	spec.Seasons = []string{"Fall"}
	assert.Len(t, spec.Apply(rows), 2)

	spec = NewFilterSpec()
	spec.Weather = []string{"Clear/Cloudy", "Mist/Cloudy"}
	assert.Len(t, spec.Apply(rows), 4)

	spec = NewFilterSpec()
	spec.Years = []int{2012}
	assert.Len(t, spec.Apply(rows), 1)
}

func TestEmptySelectionExcludesAllRows(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)

	// nil means the predicate is inactive; empty non-nil matches nothing
	spec := NewFilterSpec()
	spec.Seasons = []string{}
	assert.Empty(t, spec.Apply(rows))

	spec = NewFilterSpec()
	spec.Weather = []string{}
	assert.Empty(t, spec.Apply(rows))

	spec = NewFilterSpec()
	spec.Years = []int{}
	assert.Empty(t, spec.Apply(rows))
}

func TestPredicateOrderIndependence(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)

	combined := NewFilterSpec()
	combined.Seasons = []string{"Spring", "Fall"}
	combined.HourMin = 8
	combined.HourMax = 17
	combined.Years = []int{2011}

	// Applying predicates one at a time, in two different orders, must give
	// the same subset as the combined filter
	bySeasonFirst := NewFilterSpec()
	bySeasonFirst.Seasons = []string{"Spring", "Fall"}
	step1 := bySeasonFirst.Apply(rows)

	byHour := NewFilterSpec()
	byHour.HourMin = 8
	byHour.HourMax = 17
	step2 := byHour.Apply(step1)

	byYear := NewFilterSpec()
	byYear.Years = []int{2011}
	orderA := byYear.Apply(step2)

	step1 = byYear.Apply(rows)
	step2 = byHour.Apply(step1)
	orderB := bySeasonFirst.Apply(step2)

	assert.Equal(t, combined.Apply(rows), orderA)
	assert.Equal(t, orderA, orderB)
}

func TestSelectionOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)

	a := NewFilterSpec()
	a.Seasons = []string{"Spring", "Fall"}
	b := NewFilterSpec()
	b.Seasons = []string{"Fall", "Spring"}

	assert.Equal(t, a.Apply(rows), b.Apply(rows))
	assert.Equal(t, a.Key(), b.Key())
}

func TestKeyDistinguishesInactiveFromEmpty(t *testing.T) {
	t.Parallel()

	inactive := NewFilterSpec()
	empty := NewFilterSpec()
	empty.Seasons = []string{}

	assert.NotEqual(t, inactive.Key(), empty.Key())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	spec := NewFilterSpec()
	assert.NoError(t, spec.Validate())

	spec = NewFilterSpec()
	spec.HourMin = 12
	spec.HourMax = 8
	assert.Error(t, spec.Validate(), "inverted hour range")

	spec = NewFilterSpec()
	spec.HourMax = 24
	assert.Error(t, spec.Validate(), "hour out of range")

	spec = NewFilterSpec()
	spec.StartDate = mustDate(t, "2012-01-01")
	spec.EndDate = mustDate(t, "2011-01-01")
	assert.Error(t, spec.Validate(), "inverted date range")

	spec = NewFilterSpec()
	spec.Seasons = []string{"Monsoon"}
	assert.Error(t, spec.Validate(), "unknown season label")

	spec = NewFilterSpec()
	spec.Weather = []string{"Sharknado"}
	assert.Error(t, spec.Validate(), "unknown weather label")
}
