package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the service logger. Development gets debug-level,
// human-readable console output; everything else gets info-level JSON.
func NewLogger(appEnv string) zerolog.Logger {
	dev := appEnv == "development"

	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}

	var out = os.Stdout
	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "smartstock").
		Logger()

	if dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return logger
}
