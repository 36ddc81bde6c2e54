// Package logging configures the process-wide debug logger. A hook
// invocation must keep the caller's stderr quiet unless debugging was
// asked for, so the logger starts Disabled rather than at Info.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = Logger
}

// Configure sets up the global logger. With debug false all log calls
// stay no-ops.
func Configure(debug bool) {
	if !debug {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}
	Logger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = Logger
}

// Debug logs a message at debug level.
func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) {
	Logger.Debug().Msgf(format, args...)
}

// WithField creates a logger with a field attached.
func WithField(key string, value interface{}) zerolog.Logger {
	return Logger.With().Interface(key, value).Logger()
}
