package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets a human-readable console
// writer, every other environment JSON on stdout.
func New(environment string) zerolog.Logger {
	return NewWithLevel(environment, "")
}

func NewWithLevel(environment, level string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if environment == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "checkbook-insights").
		Logger()
}
