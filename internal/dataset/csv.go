// csv.go: reads the delimited rental observations file
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/tphakala/bikeshare-go/internal/errors"
)

// timestampLayout is the combined date+time format used by the dataset.
const timestampLayout = "2006-01-02 15:04:05"

// requiredColumns are the header names the dataset file must provide.
var requiredColumns = []string{
	"datetime", "season", "holiday", "workingday", "weather",
	"temp", "atemp", "humidity", "windspeed", "casual", "registered", "count",
}

// ReadFile reads all rental records from a delimited file. The first row must
// be a header naming every required column; column order is free. When
// strictTotals is set, rows where count != casual + registered are rejected.
func ReadFile(path string, separator rune, strictTotals bool) ([]RentalRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("dataset").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	defer file.Close()

	return readRecords(file, path, separator, strictTotals)
}

func readRecords(r io.Reader, path string, separator rune, strictTotals bool) ([]RentalRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = separator
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Newf("reading header of %s: %w", path, err).
			Component("dataset").
			Category(errors.CategoryFileParsing).
			Build()
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []RentalRecord
	row := 1 // header was row 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, errors.Newf("reading row %d of %s: %w", row, path, err).
				Component("dataset").
				Category(errors.CategoryFileParsing).
				Context("row", row).
				Build()
		}

		record, err := parseRecord(fields, columns)
		if err != nil {
			return nil, errors.Newf("row %d of %s: %w", row, path, err).
				Component("dataset").
				Category(errors.CategoryFileParsing).
				Context("row", row).
				Build()
		}

		if strictTotals && record.Count != record.Casual+record.Registered {
			return nil, errors.Newf("row %d of %s: count %d does not equal casual %d + registered %d",
				row, path, record.Count, record.Casual, record.Registered).
				Component("dataset").
				Category(errors.CategoryValidation).
				Context("row", row).
				Build()
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, errors.Newf("dataset %s contains no data rows", path).
			Component("dataset").
			Category(errors.CategoryValidation).
			Build()
	}

	return records, nil
}

// mapColumns resolves header names to column indexes and checks that every
// required column is present.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, errors.Newf("dataset header is missing required column %q", name).
				Component("dataset").
				Category(errors.CategoryFileParsing).
				Context("column", name).
				Build()
		}
	}
	return columns, nil
}

func parseRecord(fields []string, columns map[string]int) (RentalRecord, error) {
	var record RentalRecord

	get := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(fields) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return fields[idx], nil
	}

	intField := func(name string, dst *int) error {
		raw, err := get(name)
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		*dst = v
		return nil
	}

	floatField := func(name string, dst *float64) error {
		raw, err := get(name)
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		*dst = v
		return nil
	}

	raw, err := get("datetime")
	if err != nil {
		return record, err
	}
	record.Timestamp, err = time.Parse(timestampLayout, raw)
	if err != nil {
		return record, fmt.Errorf("field \"datetime\": %w", err)
	}

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"season", &record.Season},
		{"holiday", &record.Holiday},
		{"workingday", &record.WorkingDay},
		{"weather", &record.Weather},
		{"casual", &record.Casual},
		{"registered", &record.Registered},
		{"count", &record.Count},
	} {
		if err := intField(f.name, f.dst); err != nil {
			return record, err
		}
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"temp", &record.Temp},
		{"atemp", &record.ATemp},
		{"humidity", &record.Humidity},
		{"windspeed", &record.Windspeed},
	} {
		if err := floatField(f.name, f.dst); err != nil {
			return record, err
		}
	}

	return record, nil
}
