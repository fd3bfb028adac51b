package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the service logger writing to stdout.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(out io.Writer, cfg LoggerConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("app", "voucher-hub").
		Logger()
}

// parseLevel maps a configured level name to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
