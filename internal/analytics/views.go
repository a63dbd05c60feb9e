// views.go: the fixed catalog of aggregate views behind the dashboard charts
package analytics

import (
	"sort"
	"time"

	"github.com/tphakala/bikeshare-go/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// KPIs are the scalar metrics shown in the dashboard header row. Every value
// degrades to zero over an empty filtered subset instead of raising.
type KPIs struct {
	TotalRentals int     `json:"total_rentals"`
	AvgTemp      float64 `json:"avg_temp"`
	AvgHumidity  float64 `json:"avg_humidity"`
	PeakHour     int     `json:"peak_hour"`
}

// DailyTotal is one point of the daily rentals line chart.
type DailyTotal struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HourlyWorkdayMean is one point of the hourly demand chart, split by
// working versus non-working days.
type HourlyWorkdayMean struct {
	Hour      int     `json:"hour"`
	DayType   string  `json:"day_type"`
	MeanCount float64 `json:"mean_count"`
}

// SeasonTotal is one bar of the rentals-by-season chart.
type SeasonTotal struct {
	Season string `json:"season"`
	Count  int    `json:"count"`
}

// ScatterPoint is one marker of the temperature-versus-count scatter. Rows
// pass through unaggregated.
type ScatterPoint struct {
	Temp     float64 `json:"temp"`
	Count    int     `json:"count"`
	Season   string  `json:"season"`
	Humidity float64 `json:"humidity"`
}

// UserSplit is the casual/registered split feeding the pie chart.
type UserSplit struct {
	Casual     int `json:"casual"`
	Registered int `json:"registered"`
}

// CorrelationMatrix is the pairwise Pearson correlation over the numeric
// fields. The diagonal is always 1.0 and the matrix is symmetric.
type CorrelationMatrix struct {
	Fields []string    `json:"fields"`
	Matrix [][]float64 `json:"matrix"`
}

// WeeklyHeatmap is the day-by-hour mean rentals matrix. All 7 days and 24
// hours are present; cells with no underlying rows are nil, not zero, so the
// rendering layer can leave them as gaps.
type WeeklyHeatmap struct {
	Days  []string     `json:"days"`
	Hours []int        `json:"hours"`
	Cells [][]*float64 `json:"cells"`
}

// PeriodMean is one bar of the period-of-day chart, in fixed bucket order.
type PeriodMean struct {
	Period    string  `json:"period"`
	MeanCount float64 `json:"mean_count"`
}

// Snapshot bundles the KPIs and every aggregate view computed from one
// filtered subset. It owns no state beyond its own computation.
type Snapshot struct {
	FilterKey  string    `json:"filter_key"`
	ComputedAt time.Time `json:"computed_at"`
	Rows       int       `json:"rows"`

	KPIs        KPIs                `json:"kpis"`
	Daily       []DailyTotal        `json:"daily"`
	Hourly      []HourlyWorkdayMean `json:"hourly"`
	Seasons     []SeasonTotal       `json:"seasons"`
	Scatter     []ScatterPoint      `json:"scatter"`
	Users       UserSplit           `json:"users"`
	Correlation CorrelationMatrix   `json:"correlation"`
	Heatmap     WeeklyHeatmap       `json:"heatmap"`
	Periods     []PeriodMean        `json:"periods"`
}

// ComputeSnapshot filters the enriched records and computes the full view
// catalog. It is a pure function: same records and spec, same snapshot.
func ComputeSnapshot(records []dataset.EnrichedRecord, spec FilterSpec) *Snapshot {
	filtered := spec.Apply(records)

	return &Snapshot{
		FilterKey:   spec.Key(),
		ComputedAt:  time.Now(),
		Rows:        len(filtered),
		KPIs:        computeKPIs(filtered),
		Daily:       computeDailyTotals(filtered),
		Hourly:      computeHourlyWorkdayMeans(filtered),
		Seasons:     computeSeasonTotals(filtered),
		Scatter:     computeScatter(filtered),
		Users:       computeUserSplit(filtered),
		Correlation: computeCorrelation(filtered),
		Heatmap:     computeWeeklyHeatmap(filtered),
		Periods:     computePeriodMeans(filtered),
	}
}

func computeKPIs(rows []dataset.EnrichedRecord) KPIs {
	var kpis KPIs
	if len(rows) == 0 {
		return kpis
	}

	temps := make([]float64, len(rows))
	humidities := make([]float64, len(rows))
	var hourSums [24]int

	for i := range rows {
		r := &rows[i]
		kpis.TotalRentals += r.Count
		temps[i] = r.Temp
		humidities[i] = r.Humidity
		hourSums[r.Hour] += r.Count
	}

	kpis.AvgTemp = stat.Mean(temps, nil)
	kpis.AvgHumidity = stat.Mean(humidities, nil)

	// Peak hour is the argmax of per-hour summed count; ties resolve to the
	// smallest hour.
	peak := 0
	for hour := 1; hour < 24; hour++ {
		if hourSums[hour] > hourSums[peak] {
			peak = hour
		}
	}
	kpis.PeakHour = peak

	return kpis
}

func computeDailyTotals(rows []dataset.EnrichedRecord) []DailyTotal {
	sums := make(map[string]int)
	for i := range rows {
		sums[rows[i].Date.Format("2006-01-02")] += rows[i].Count
	}

	totals := make([]DailyTotal, 0, len(sums))
	for date, count := range sums {
		totals = append(totals, DailyTotal{Date: date, Count: count})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date < totals[j].Date
	})
	return totals
}

func computeHourlyWorkdayMeans(rows []dataset.EnrichedRecord) []HourlyWorkdayMean {
	type key struct {
		hour    int
		dayType string
	}
	sums := make(map[key]int)
	counts := make(map[key]int)
	for i := range rows {
		k := key{hour: rows[i].Hour, dayType: rows[i].WorkingDayLabel}
		sums[k] += rows[i].Count
		counts[k]++
	}

	means := make([]HourlyWorkdayMean, 0, len(sums))
	for k, total := range sums {
		means = append(means, HourlyWorkdayMean{
			Hour:      k.hour,
			DayType:   k.dayType,
			MeanCount: float64(total) / float64(counts[k]),
		})
	}
	sort.Slice(means, func(i, j int) bool {
		if means[i].Hour != means[j].Hour {
			return means[i].Hour < means[j].Hour
		}
		return means[i].DayType < means[j].DayType
	})
	return means
}

func computeSeasonTotals(rows []dataset.EnrichedRecord) []SeasonTotal {
	sums := make(map[string]int)
	for i := range rows {
		sums[rows[i].SeasonLabel] += rows[i].Count
	}

	// Canonical season order, only seasons present in the subset
	totals := make([]SeasonTotal, 0, len(sums))
	for _, season := range dataset.SeasonOrder() {
		if count, ok := sums[season]; ok {
			totals = append(totals, SeasonTotal{Season: season, Count: count})
		}
	}
	return totals
}

func computeScatter(rows []dataset.EnrichedRecord) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		points = append(points, ScatterPoint{
			Temp:     r.Temp,
			Count:    r.Count,
			Season:   r.SeasonLabel,
			Humidity: r.Humidity,
		})
	}
	return points
}

func computeUserSplit(rows []dataset.EnrichedRecord) UserSplit {
	var split UserSplit
	for i := range rows {
		split.Casual += rows[i].Casual
		split.Registered += rows[i].Registered
	}
	return split
}

func computeWeeklyHeatmap(rows []dataset.EnrichedRecord) WeeklyHeatmap {
	days := dataset.WeekdayOrder()

	var sums [7][24]int
	var counts [7][24]int
	for i := range rows {
		day := dataset.WeekdayIndex(rows[i].Weekday)
		if day < 0 {
			continue
		}
		sums[day][rows[i].Hour] += rows[i].Count
		counts[day][rows[i].Hour]++
	}

	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}

	// All 7x24 cells are present; combinations with no rows stay nil
	cells := make([][]*float64, len(days))
	for day := range days {
		cells[day] = make([]*float64, 24)
		for hour := 0; hour < 24; hour++ {
			if counts[day][hour] == 0 {
				continue
			}
			mean := float64(sums[day][hour]) / float64(counts[day][hour])
			cells[day][hour] = &mean
		}
	}

	return WeeklyHeatmap{Days: days, Hours: hours, Cells: cells}
}

func computePeriodMeans(rows []dataset.EnrichedRecord) []PeriodMean {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for i := range rows {
		sums[rows[i].PeriodOfDay] += rows[i].Count
		counts[rows[i].PeriodOfDay]++
	}

	// Fixed bucket order regardless of appearance order
	means := make([]PeriodMean, 0, len(sums))
	for _, period := range dataset.PeriodOrder() {
		if counts[period] == 0 {
			continue
		}
		means = append(means, PeriodMean{
			Period:    period,
			MeanCount: float64(sums[period]) / float64(counts[period]),
		})
	}
	return means
}
