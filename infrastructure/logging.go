package infrastructure

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// NewLogger builds the process logger for the given level name.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func logAPICall(req *http.Request, status int, elapsed time.Duration) {
	slog.Debug("cvalign api call",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("elapsed", elapsed),
	)
}
