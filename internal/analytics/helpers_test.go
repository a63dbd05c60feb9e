package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tphakala/bikeshare-go/internal/dataset"
)

// rawRow is a compact fixture describing one observation.
type rawRow struct {
	ts         string // "2006-01-02 15:04:05"
	season     int
	weather    int
	workingDay int
	temp       float64
	humidity   float64
	windspeed  float64
	casual     int
	registered int
}

func enrichRows(t *testing.T, rows []rawRow) []dataset.EnrichedRecord {
	t.Helper()

	records := make([]dataset.RentalRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse("2006-01-02 15:04:05", row.ts)
		require.NoError(t, err)
		records = append(records, dataset.RentalRecord{
			Timestamp:  ts,
			Season:     row.season,
			Weather:    row.weather,
			WorkingDay: row.workingDay,
			Temp:       row.temp,
			ATemp:      row.temp + 2,
			Humidity:   row.humidity,
			Windspeed:  row.windspeed,
			Casual:     row.casual,
			Registered: row.registered,
			Count:      row.casual + row.registered,
		})
	}

	enriched, err := dataset.Enrich(records)
	require.NoError(t, err)
	return enriched
}

// scenarioRows builds the two-row end-to-end fixture: one working-day and
// one non-working-day observation at hour 8 in Spring.
func scenarioRows(t *testing.T) []dataset.EnrichedRecord {
	t.Helper()
	return enrichRows(t, []rawRow{
		{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, casual: 10, registered: 40},
		{ts: "2011-01-06 08:00:00", season: 1, weather: 1, workingDay: 0, temp: 12, humidity: 75, casual: 12, registered: 18},
	})
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}
