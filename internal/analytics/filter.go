// Package analytics filters the enriched rental dataset and computes the
// aggregate views and KPIs each dashboard chart consumes.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tphakala/bikeshare-go/internal/dataset"
	"github.com/tphakala/bikeshare-go/internal/errors"
)

// FilterSpec is the conjunction of active filter predicates selected by a
// user. A record passes only if every active predicate accepts it.
//
// Categorical selections distinguish "inactive" from "select nothing": a nil
// slice means the predicate is inactive (all values pass), while an empty
// non-nil slice matches zero rows. Dashboards that let the user deselect
// every option rely on the latter.
type FilterSpec struct {
	StartDate time.Time // zero = unset
	EndDate   time.Time // zero = unset; a single set bound means exact-match on that date
	Seasons   []string  // accepted season labels
	Weather   []string  // accepted weather labels
	Years     []int     // accepted calendar years
	HourMin   int       // inclusive, 0-23
	HourMax   int       // inclusive, 0-23
}

// NewFilterSpec returns a FilterSpec that passes every record.
func NewFilterSpec() FilterSpec {
	return FilterSpec{HourMin: 0, HourMax: 23}
}

// Validate checks the spec for values no record could ever satisfy by
// accident: inverted ranges, out-of-range hours, labels that are not part of
// the dataset vocabulary.
func (f *FilterSpec) Validate() error {
	if f.HourMin < 0 || f.HourMin > 23 || f.HourMax < 0 || f.HourMax > 23 {
		return errors.Newf("hour range must be within 0-23, got [%d,%d]", f.HourMin, f.HourMax).
			Component("analytics").
			Category(errors.CategoryValidation).
			Build()
	}
	if f.HourMin > f.HourMax {
		return errors.Newf("hour range is inverted: [%d,%d]", f.HourMin, f.HourMax).
			Component("analytics").
			Category(errors.CategoryValidation).
			Build()
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.StartDate.After(f.EndDate) {
		return errors.Newf("start date %s is after end date %s",
			f.StartDate.Format("2006-01-02"), f.EndDate.Format("2006-01-02")).
			Component("analytics").
			Category(errors.CategoryValidation).
			Build()
	}
	for _, label := range f.Seasons {
		if !containsString(dataset.SeasonOrder(), label) {
			return errors.Newf("unknown season label %q", label).
				Component("analytics").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	for _, label := range f.Weather {
		if !containsString(dataset.WeatherOrder(), label) {
			return errors.Newf("unknown weather label %q", label).
				Component("analytics").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	return nil
}

// dateBounds resolves the date predicate. When only one bound is given the
// predicate collapses to an exact match on that date, matching the behavior
// of date pickers that yield a singleton instead of a pair.
func (f *FilterSpec) dateBounds() (start, end time.Time, active bool) {
	switch {
	case f.StartDate.IsZero() && f.EndDate.IsZero():
		return time.Time{}, time.Time{}, false
	case f.EndDate.IsZero():
		return f.StartDate, f.StartDate, true
	case f.StartDate.IsZero():
		return f.EndDate, f.EndDate, true
	default:
		return f.StartDate, f.EndDate, true
	}
}

// Matches reports whether a record passes every active predicate.
func (f *FilterSpec) Matches(r *dataset.EnrichedRecord) bool {
	if start, end, active := f.dateBounds(); active {
		// Inclusive on both ends
		if r.Date.Before(truncateToDate(start)) || r.Date.After(truncateToDate(end)) {
			return false
		}
	}

	if r.Hour < f.HourMin || r.Hour > f.HourMax {
		return false
	}

	if f.Seasons != nil && !containsString(f.Seasons, r.SeasonLabel) {
		return false
	}
	if f.Weather != nil && !containsString(f.Weather, r.WeatherLabel) {
		return false
	}
	if f.Years != nil && !containsInt(f.Years, r.Year) {
		return false
	}

	return true
}

// Apply returns the records passing the filter, preserving input order.
func (f *FilterSpec) Apply(records []dataset.EnrichedRecord) []dataset.EnrichedRecord {
	filtered := make([]dataset.EnrichedRecord, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

// Key returns a canonical string for the spec, usable as a cache key.
// Selection order within a categorical predicate does not change the key.
func (f *FilterSpec) Key() string {
	var b strings.Builder

	writeDate := func(name string, t time.Time) {
		if t.IsZero() {
			fmt.Fprintf(&b, "%s=*|", name)
		} else {
			fmt.Fprintf(&b, "%s=%s|", name, t.Format("2006-01-02"))
		}
	}
	writeSet := func(name string, values []string) {
		if values == nil {
			fmt.Fprintf(&b, "%s=*|", name)
			return
		}
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "%s=%s|", name, strings.Join(sorted, ","))
	}

	writeDate("start", f.StartDate)
	writeDate("end", f.EndDate)
	writeSet("seasons", f.Seasons)
	writeSet("weather", f.Weather)

	if f.Years == nil {
		b.WriteString("years=*|")
	} else {
		years := append([]int(nil), f.Years...)
		sort.Ints(years)
		parts := make([]string, len(years))
		for i, y := range years {
			parts[i] = fmt.Sprintf("%d", y)
		}
		fmt.Fprintf(&b, "years=%s|", strings.Join(parts, ","))
	}

	fmt.Fprintf(&b, "hours=%d-%d", f.HourMin, f.HourMax)
	return b.String()
}

func truncateToDate(ts time.Time) time.Time {
	year, month, day := ts.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, n := range values {
		if n == v {
			return true
		}
	}
	return false
}
