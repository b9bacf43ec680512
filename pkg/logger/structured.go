package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var zlog zerolog.Logger

// Init sets up a console logger so early startup messages have
// somewhere to go before the environment is known.
func Init() {
	w := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zlog = zerolog.New(w).With().Timestamp().Logger()
}

// InitStructured initializes the structured zerolog logger
func InitStructured(env string) {
	var w io.Writer

	if env == "development" || env == "dev" || env == "local" {
		// Pretty console output for development
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	} else {
		// JSON output for production (machine-readable)
		w = os.Stdout
	}

	zlog = zerolog.New(w).With().
		Timestamp().
		Str("service", "quizstage-backend").
		Logger()

	zerolog.TimeFieldFormat = time.RFC3339
}

// GetLogger returns the global zerolog logger
func GetLogger() *zerolog.Logger {
	return &zlog
}

// WithRequestID returns a logger with request_id field
func WithRequestID(requestID string) *zerolog.Logger {
	l := zlog.With().Str("request_id", requestID).Logger()
	return &l
}

// WithRunID returns a logger with run_id field
func WithRunID(runID string) *zerolog.Logger {
	l := zlog.With().Str("run_id", runID).Logger()
	return &l
}

// Info logs a printf-style informational message
func Info(format string, v ...interface{}) {
	zlog.Info().Msgf(format, v...)
}

// Warn logs a printf-style warning message
func Warn(format string, v ...interface{}) {
	zlog.Warn().Msgf(format, v...)
}

// Error logs a printf-style error message
func Error(format string, v ...interface{}) {
	zlog.Error().Msgf(format, v...)
}
