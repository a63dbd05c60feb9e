// Package-level logging for analytics operations
package analytics

import (
	"io"
	"log/slog"

	"github.com/tphakala/bikeshare-go/internal/logging"
)

var (
	analyticsLogger   *slog.Logger
	analyticsLevelVar = new(slog.LevelVar)
)

func init() {
	var err error
	analyticsLevelVar.Set(slog.LevelInfo)

	analyticsLogger, _, err = logging.NewFileLogger("logs/analytics.log", "analytics", analyticsLevelVar)
	if err != nil {
		logging.Error("Failed to initialize analytics file logger", "error", err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: analyticsLevelVar})
		analyticsLogger = slog.New(fbHandler).With("service", "analytics")
	}
}

// SetLogLevel adjusts the analytics log level at runtime.
func SetLogLevel(level slog.Level) {
	analyticsLevelVar.Set(level)
}
