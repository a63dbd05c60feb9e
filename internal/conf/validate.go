// validate.go: settings validation before use
package conf

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/tphakala/bikeshare-go/internal/errors"
)

// ValidateSettings checks the loaded settings for values that would make the
// pipeline misbehave at runtime. It returns the first problem found.
func ValidateSettings(settings *Settings) error {
	if err := validateDatasetSettings(&settings.Dataset); err != nil {
		return err
	}
	if err := validateWebServerSettings(settings); err != nil {
		return err
	}
	return nil
}

func validateDatasetSettings(ds *DatasetSettings) error {
	if ds.Path == "" {
		return errors.Newf("dataset.path must not be empty").
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if utf8.RuneCountInString(ds.Separator) != 1 {
		return errors.Newf("dataset.separator must be a single character, got %q", ds.Separator).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if ds.SnapshotTTL < 0 {
		return errors.Newf("dataset.snapshotttl must not be negative, got %s", ds.SnapshotTTL).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

func validateWebServerSettings(settings *Settings) error {
	if !settings.WebServer.Enabled {
		return nil
	}
	port, err := strconv.Atoi(settings.WebServer.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.Newf("webserver.port must be a number between 1 and 65535, got %q", settings.WebServer.Port).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}

// SeparatorRune returns the dataset field separator as a rune.
func (ds *DatasetSettings) SeparatorRune() (rune, error) {
	r, size := utf8.DecodeRuneInString(ds.Separator)
	if size == 0 || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid dataset separator %q", ds.Separator)
	}
	return r, nil
}
