// Package logger provides a thin wrapper around zerolog.Logger with
// environment-aware construction and context helpers.
//
// Application code passes *Logger by pointer and obtains request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// New returns a *Logger configured for the given environment, writing to
// os.Stdout.
//
//	prod:    JSON at info level
//	staging: JSON at debug level
//	other:   human-readable console output at debug level
func New(env string) *Logger {
	return newWithWriter(env, os.Stdout)
}

func newWithWriter(env string, w io.Writer) *Logger {
	var (
		out   io.Writer
		level zerolog.Level
	)

	switch env {
	case "prod":
		out, level = w, zerolog.InfoLevel
	case "staging":
		out, level = w, zerolog.DebugLevel
	default:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	l := zerolog.New(out).
		Level(level).
		With().
		Str("env", env).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of the receiver that can be enriched
// without affecting the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx via zerolog's WithContext.
// zerolog falls back to its disabled default logger when none is attached,
// so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
