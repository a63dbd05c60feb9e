// Package dataset loads the rental observations file and derives the
// temporal and categorical features the analytics layer groups by.
package dataset

import (
	"time"

	"github.com/tphakala/bikeshare-go/internal/errors"
)

// RentalRecord is a single raw observation row from the rental dataset.
type RentalRecord struct {
	Timestamp  time.Time // combined date and time of the observation
	Season     int       // season code 1-4
	Holiday    int       // 1 if the day is a holiday
	WorkingDay int       // 1 if the day is neither weekend nor holiday
	Weather    int       // weather severity code 1-4
	Temp       float64   // temperature in Celsius
	ATemp      float64   // "feels like" temperature in Celsius
	Humidity   float64   // relative humidity
	Windspeed  float64   // wind speed
	Casual     int       // count of casual users
	Registered int       // count of registered users
	Count      int       // total rentals, casual + registered
}

// EnrichedRecord is a RentalRecord augmented with derived fields. Derived
// fields are pure functions of the raw fields and never change after Enrich.
type EnrichedRecord struct {
	RentalRecord

	Date            time.Time // calendar date, midnight in the timestamp's location
	Hour            int       // hour of day 0-23
	Month           string    // month name, January..December
	Weekday         string    // day-of-week name, Monday..Sunday
	Year            int       // calendar year
	PeriodOfDay     string    // coarse hour bucket, see PeriodForHour
	SeasonLabel     string    // season code mapped to a label
	WeatherLabel    string    // weather code mapped to a label
	WorkingDayLabel string    // WorkDayLabel or NonWorkDayLabel
}

// Working day labels used wherever workingday is a grouping key.
const (
	WorkDayLabel    = "Working Day"
	NonWorkDayLabel = "Non-Working Day"
)

// Period-of-day bucket labels in their fixed display order.
const (
	PeriodMorningRush = "Morning Rush"
	PeriodMidDay      = "Mid-Day"
	PeriodEveningRush = "Evening Rush"
	PeriodNight       = "Night"
)

var seasonLabels = map[int]string{
	1: "Spring",
	2: "Summer",
	3: "Fall",
	4: "Winter",
}

var weatherLabels = map[int]string{
	1: "Clear/Cloudy",
	2: "Mist/Cloudy",
	3: "Light Snow/Rain",
	4: "Heavy Rain/Ice",
}

// SeasonLabel maps a season code 1-4 to its label. Codes outside the range
// are a data error and fail loudly.
func SeasonLabel(code int) (string, error) {
	label, ok := seasonLabels[code]
	if !ok {
		return "", errors.Newf("unknown season code %d, expected 1-4", code).
			Component("dataset").
			Category(errors.CategoryValidation).
			Context("season", code).
			Build()
	}
	return label, nil
}

// WeatherLabel maps a weather code 1-4 to its label. Codes outside the range
// are a data error and fail loudly, same policy as SeasonLabel.
func WeatherLabel(code int) (string, error) {
	label, ok := weatherLabels[code]
	if !ok {
		return "", errors.Newf("unknown weather code %d, expected 1-4", code).
			Component("dataset").
			Category(errors.CategoryValidation).
			Context("weather", code).
			Build()
	}
	return label, nil
}

// SeasonOrder returns the season labels in their canonical order.
func SeasonOrder() []string {
	return []string{"Spring", "Summer", "Fall", "Winter"}
}

// WeatherOrder returns the weather labels in increasing severity order.
func WeatherOrder() []string {
	return []string{"Clear/Cloudy", "Mist/Cloudy", "Light Snow/Rain", "Heavy Rain/Ice"}
}

// WeekdayOrder returns day-of-week names Monday through Sunday. This ordering
// is used wherever weekday is a grouping or axis key, independent of the
// order days first appear in the data.
func WeekdayOrder() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
}

// MonthOrder returns month names January through December.
func MonthOrder() []string {
	return []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
}

// PeriodOrder returns the period-of-day buckets in their fixed display order.
func PeriodOrder() []string {
	return []string{PeriodMorningRush, PeriodMidDay, PeriodEveningRush, PeriodNight}
}

// PeriodForHour buckets an hour of day into a coarse period. Buckets are
// half-open: hour 10 belongs to Mid-Day, not Morning Rush.
func PeriodForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 10:
		return PeriodMorningRush
	case hour >= 10 && hour < 15:
		return PeriodMidDay
	case hour >= 15 && hour < 20:
		return PeriodEveningRush
	default:
		return PeriodNight
	}
}

// WorkingDayName maps the 0/1 workingday flag to its label.
func WorkingDayName(workingDay int) string {
	if workingDay == 1 {
		return WorkDayLabel
	}
	return NonWorkDayLabel
}

// WeekdayIndex returns the position of a weekday name within WeekdayOrder,
// or -1 for an unknown name.
func WeekdayIndex(name string) int {
	for i, day := range WeekdayOrder() {
		if day == name {
			return i
		}
	}
	return -1
}
