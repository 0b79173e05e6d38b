// internal/logging/logging.go
package logging

import (
	"log/slog"
	"os"
)

// New builds the process-wide structured logger. debug widens the level to
// include Debug-level records; production deploys run at Info.
func New(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
	return logger
}
