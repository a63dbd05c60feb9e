package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/bikeshare-go/internal/dataset"
)

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	rows := scenarioRows(t)

	spec := NewFilterSpec()
	spec.HourMin = 8
	spec.HourMax = 8
	spec.Seasons = []string{"Spring"}

	snapshot := ComputeSnapshot(rows, spec)
	require.Equal(t, 2, snapshot.Rows)

	// Sum-by-date view
	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, DailyTotal{Date: "2011-01-05", Count: 50}, snapshot.Daily[0])
	assert.Equal(t, DailyTotal{Date: "2011-01-06", Count: 30}, snapshot.Daily[1])

	// Mean-by-hour-and-workingday view
	require.Len(t, snapshot.Hourly, 2)
	byDayType := map[string]float64{}
	for _, h := range snapshot.Hourly {
		assert.Equal(t, 8, h.Hour)
		byDayType[h.DayType] = h.MeanCount
	}
	assert.InDelta(t, 50, byDayType[dataset.WorkDayLabel], 1e-9)
	assert.InDelta(t, 30, byDayType[dataset.NonWorkDayLabel], 1e-9)
}

func TestKPIs(t *testing.T) {
	t.Parallel()

	rows := enrichRows(t, []rawRow{
		{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, casual: 10, registered: 40},
		{ts: "2011-01-05 17:00:00", season: 1, weather: 1, workingDay: 1, temp: 14, humidity: 60, casual: 20, registered: 60},
		{ts: "2011-01-06 08:00:00", season: 1, weather: 1, workingDay: 0, temp: 12, humidity: 70, casual: 12, registered: 18},
	})

	snapshot := ComputeSnapshot(rows, NewFilterSpec())
	kpis := snapshot.KPIs

	assert.Equal(t, 160, kpis.TotalRentals)
	assert.InDelta(t, 12.0, kpis.AvgTemp, 1e-9)
	assert.InDelta(t, 70.0, kpis.AvgHumidity, 1e-9)
	// hour 8 sums to 80, hour 17 sums to 80: tie resolves to the smallest hour
	assert.Equal(t, 8, kpis.PeakHour)
}

func TestEmptySubsetDegradesToDefaults(t *testing.T) {
	t.Parallel()

	rows := scenarioRows(t)

	spec := NewFilterSpec()
	spec.Seasons = []string{} // exclude everything

	snapshot := ComputeSnapshot(rows, spec)

	assert.Equal(t, 0, snapshot.Rows)
	assert.Equal(t, KPIs{}, snapshot.KPIs)
	assert.Empty(t, snapshot.Daily)
	assert.Empty(t, snapshot.Hourly)
	assert.Empty(t, snapshot.Seasons)
	assert.Empty(t, snapshot.Scatter)
	assert.Equal(t, UserSplit{}, snapshot.Users)
	assert.Empty(t, snapshot.Periods)

	// Correlation stays well-defined: diagonal 1, off-diagonal 0
	for i, row := range snapshot.Correlation.Matrix {
		for j, v := range row {
			if i == j {
				assert.Equal(t, 1.0, v)
			} else {
				assert.Equal(t, 0.0, v)
			}
		}
	}

	// Heatmap keeps its full shape with every cell nil
	require.Len(t, snapshot.Heatmap.Cells, 7)
	for _, dayRow := range snapshot.Heatmap.Cells {
		require.Len(t, dayRow, 24)
		for _, cell := range dayRow {
			assert.Nil(t, cell)
		}
	}
}

func TestUserSplitMatchesTotals(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)
	snapshot := ComputeSnapshot(rows, NewFilterSpec())

	// casual + registered equals the total count KPI when the raw invariant holds
	assert.Equal(t, snapshot.KPIs.TotalRentals, snapshot.Users.Casual+snapshot.Users.Registered)
}

func TestSeasonTotalsCanonicalOrder(t *testing.T) {
	t.Parallel()

	// Fall rows appear before Spring rows in the input
	rows := enrichRows(t, []rawRow{
		{ts: "2011-07-10 08:00:00", season: 3, weather: 1, workingDay: 0, temp: 30, humidity: 50, casual: 40, registered: 60},
		{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, casual: 10, registered: 40},
		{ts: "2011-10-20 08:00:00", season: 4, weather: 1, workingDay: 1, temp: 15, humidity: 65, casual: 20, registered: 30},
	})

	snapshot := ComputeSnapshot(rows, NewFilterSpec())
	require.Len(t, snapshot.Seasons, 3)
	assert.Equal(t, "Spring", snapshot.Seasons[0].Season)
	assert.Equal(t, "Fall", snapshot.Seasons[1].Season)
	assert.Equal(t, "Winter", snapshot.Seasons[2].Season)
}

func TestPeriodMeansFixedBucketOrder(t *testing.T) {
	t.Parallel()

	// Night and Evening Rush rows appear before Morning Rush rows
	rows := enrichRows(t, []rawRow{
		{ts: "2011-01-05 23:00:00", season: 1, weather: 1, workingDay: 1, temp: 5, humidity: 80, casual: 1, registered: 9},
		{ts: "2011-01-05 17:00:00", season: 1, weather: 1, workingDay: 1, temp: 12, humidity: 70, casual: 20, registered: 60},
		{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 75, casual: 10, registered: 40},
		{ts: "2011-01-05 12:00:00", season: 1, weather: 1, workingDay: 1, temp: 13, humidity: 65, casual: 15, registered: 35},
	})

	snapshot := ComputeSnapshot(rows, NewFilterSpec())
	require.Len(t, snapshot.Periods, 4)
	assert.Equal(t, dataset.PeriodMorningRush, snapshot.Periods[0].Period)
	assert.Equal(t, dataset.PeriodMidDay, snapshot.Periods[1].Period)
	assert.Equal(t, dataset.PeriodEveningRush, snapshot.Periods[2].Period)
	assert.Equal(t, dataset.PeriodNight, snapshot.Periods[3].Period)

	assert.InDelta(t, 50.0, snapshot.Periods[0].MeanCount, 1e-9)
	assert.InDelta(t, 10.0, snapshot.Periods[3].MeanCount, 1e-9)
}

func TestWeeklyHeatmapShapeAndGaps(t *testing.T) {
	t.Parallel()

	// Two Wednesday observations at hour 8, nothing else
	rows := enrichRows(t, []rawRow{
		{ts: "2011-01-05 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 10, humidity: 80, casual: 10, registered: 40},
		{ts: "2011-01-12 08:00:00", season: 1, weather: 1, workingDay: 1, temp: 11, humidity: 78, casual: 20, registered: 50},
	})

	snapshot := ComputeSnapshot(rows, NewFilterSpec())
	heatmap := snapshot.Heatmap

	assert.Equal(t, dataset.WeekdayOrder(), heatmap.Days)
	require.Len(t, heatmap.Cells, 7)

	wednesday := dataset.WeekdayIndex("Wednesday")
	for day, dayRow := range heatmap.Cells {
		require.Len(t, dayRow, 24)
		for hour, cell := range dayRow {
			if day == wednesday && hour == 8 {
				require.NotNil(t, cell)
				assert.InDelta(t, 60.0, *cell, 1e-9, "mean of 50 and 70")
			} else {
				assert.Nil(t, cell, "day %d hour %d has no rows and must stay a gap", day, hour)
			}
		}
	}
}

func TestScatterPassThrough(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)
	snapshot := ComputeSnapshot(rows, NewFilterSpec())

	require.Len(t, snapshot.Scatter, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].Temp, snapshot.Scatter[i].Temp)
		assert.Equal(t, rows[i].Count, snapshot.Scatter[i].Count)
		assert.Equal(t, rows[i].SeasonLabel, snapshot.Scatter[i].Season)
		assert.Equal(t, rows[i].Humidity, snapshot.Scatter[i].Humidity)
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	t.Parallel()

	rows := filterFixture(t)
	spec := NewFilterSpec()
	spec.Seasons = []string{"Spring"}

	a := ComputeSnapshot(rows, spec)
	b := ComputeSnapshot(rows, spec)

	assert.Equal(t, a.KPIs, b.KPIs)
	assert.Equal(t, a.Daily, b.Daily)
	assert.Equal(t, a.Hourly, b.Hourly)
	assert.Equal(t, a.Correlation, b.Correlation)
}
