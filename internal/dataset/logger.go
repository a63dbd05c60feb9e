// Package-level logging for dataset operations
package dataset

import (
	"io"
	"log/slog"

	"github.com/tphakala/bikeshare-go/internal/logging"
)

var (
	datasetLogger   *slog.Logger
	datasetLevelVar = new(slog.LevelVar) // Dynamic level control
)

func init() {
	var err error
	datasetLevelVar.Set(slog.LevelInfo)

	datasetLogger, _, err = logging.NewFileLogger("logs/dataset.log", "dataset", datasetLevelVar)
	if err != nil {
		// Fallback to a disabled logger (writes to io.Discard) but respects the level var
		logging.Error("Failed to initialize dataset file logger", "error", err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: datasetLevelVar})
		datasetLogger = slog.New(fbHandler).With("service", "dataset")
	}
}

// SetLogLevel adjusts the dataset log level at runtime.
func SetLogLevel(level slog.Level) {
	datasetLevelVar.Set(level)
}
