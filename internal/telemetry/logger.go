package telemetry

import (
	"log/slog"
	"os"
)

// InitLogger configures the default slog logger. Debug switches the level;
// output is JSON on stderr so benchmark tables on stdout stay parseable.
func InitLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
