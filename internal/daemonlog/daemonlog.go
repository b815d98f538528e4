// Package daemonlog sets up the daemon's single slog.Logger: a JSON
// handler writing to stdout and, once configured, also to a log file,
// with a level adjustable at runtime without reconstructing the
// handler.
package daemonlog

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	setupOnce sync.Once
	logger    *slog.Logger
	levelVar  = &slog.LevelVar{}
	logFile   *os.File
)

// Setup opens filePath (if non-empty) and installs the daemon's logger
// as the process default. It must be called once, before any other
// package logs. A repeat call is a no-op.
func Setup(filePath string, level slog.Level) *slog.Logger {
	setupOnce.Do(func() {
		levelVar.Set(level)

		w := io.Writer(os.Stdout)
		if filePath != "" {
			f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				panic("daemonlog: failed to open log file: " + err.Error())
			}
			logFile = f
			w = io.MultiWriter(os.Stdout, f)
		}

		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
	return logger
}

// Logger returns the process logger, setting up a stdout-only default
// one first if Setup was never called.
func Logger() *slog.Logger {
	if logger == nil {
		return Setup("", slog.LevelInfo)
	}
	return logger
}

// SetLevel adjusts the logger's level without rebuilding the handler.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// ParseLevel maps a CLI --log-level string onto a slog.Level, defaulting
// to Info for an unrecognized value.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close flushes and closes the log file, if one was opened. Safe to
// call even when Setup was never given a file path.
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}
