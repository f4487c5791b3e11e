package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	return Build(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Build creates the process logger. An unknown or empty level falls back to
// info; format "console" switches to human readable output.
func Build(level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)
}

var Module = fx.Provide(New)
