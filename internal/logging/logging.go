// Package logging configures the file logger. Console output stays
// user-facing and unstructured; the log file is where unhandled errors and
// run diagnostics go.
package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// PathEnv selects an alternate log file path.
const PathEnv = "DOMESTOBOT_LOG"

// NewFileLogger returns a logger writing JSON events to the log file at
// $DOMESTOBOT_LOG (default: <user cache dir>/domestobot/log), rotated by
// size, and a close function for shutdown. If no log file can be set up
// the logger is a no-op; the tool keeps working without diagnostics.
func NewFileLogger() (zerolog.Logger, func() error) {
	noop := func() error { return nil }

	path := os.Getenv(PathEnv)
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return zerolog.Nop(), noop
		}
		path = filepath.Join(cacheDir, "domestobot", "log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), noop
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}
	logger := zerolog.New(writer).With().Timestamp().Logger()
	return logger, writer.Close
}
