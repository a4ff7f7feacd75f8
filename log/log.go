// Package log wraps zerolog into the small leveled interface the rest of
// this module needs, matching the structured-logging conventions used
// across the example pack rather than hand-rolling one.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin, pipeline.Logger-compatible wrapper around a
// zerolog.Logger, adding a printf-style Tracef on top of zerolog's
// structured event API.
type Logger struct {
	z zerolog.Logger
}

// Option configures a Logger at construction time.
type Option func(*zerolog.Logger)

// WithLevel sets the minimum level the logger emits.
func WithLevel(level zerolog.Level) Option {
	return func(z *zerolog.Logger) {
		*z = z.Level(level)
	}
}

// WithWriter redirects log output away from the default stderr console
// writer, e.g. to a file or an io.Discard sink in tests.
func WithWriter(w io.Writer) Option {
	return func(z *zerolog.Logger) {
		*z = z.Output(w)
	}
}

// New builds a console-formatted Logger writing to stderr by default.
func New(opts ...Option) *Logger {
	z := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	for _, opt := range opts {
		opt(&z)
	}
	return &Logger{z: z}
}

// Tracef logs a formatted trace-level message. Satisfies pipeline.Logger.
func (l *Logger) Tracef(format string, args ...any) {
	l.z.Trace().Msgf(format, args...)
}

// Infof logs a formatted info-level message.
func (l *Logger) Infof(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

// Warnf logs a formatted warn-level message.
func (l *Logger) Warnf(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

// Errorf logs a formatted error-level message.
func (l *Logger) Errorf(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

// WithField returns a child Logger with a string field attached to every
// subsequent event, for tagging per-file or per-symbol context.
func (l *Logger) WithField(key, value string) *Logger {
	child := l.z.With().Str(key, value).Logger()
	return &Logger{z: child}
}
