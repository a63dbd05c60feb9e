// enrich.go: derives analysis-ready fields from raw rental records
package dataset

import (
	"time"
)

// Enrich derives the temporal and categorical fields for each record. The
// result is one-to-one with the input and preserves input order. Enrich is a
// pure transform; it fails on the first out-of-range season or weather code.
func Enrich(records []RentalRecord) ([]EnrichedRecord, error) {
	enriched := make([]EnrichedRecord, 0, len(records))

	for i := range records {
		r := &records[i]

		seasonLabel, err := SeasonLabel(r.Season)
		if err != nil {
			return nil, err
		}
		weatherLabel, err := WeatherLabel(r.Weather)
		if err != nil {
			return nil, err
		}

		ts := r.Timestamp
		enriched = append(enriched, EnrichedRecord{
			RentalRecord:    *r,
			Date:            truncateToDate(ts),
			Hour:            ts.Hour(),
			Month:           ts.Month().String(),
			Weekday:         ts.Weekday().String(),
			Year:            ts.Year(),
			PeriodOfDay:     PeriodForHour(ts.Hour()),
			SeasonLabel:     seasonLabel,
			WeatherLabel:    weatherLabel,
			WorkingDayLabel: WorkingDayName(r.WorkingDay),
		})
	}

	return enriched, nil
}

// truncateToDate drops the time-of-day component, keeping the location.
func truncateToDate(ts time.Time) time.Time {
	year, month, day := ts.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
}
