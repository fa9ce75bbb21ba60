package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every log line.
const ServiceName = "portfolio-api"

// New creates a zerolog logger from a level name and an output format.
// Format "pretty" selects the console writer; anything else logs JSON.
func New(level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel := ParseLevel(level)

	// Use pretty console output in development
	if format == "pretty" || os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", ServiceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
