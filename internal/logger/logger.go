package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogging points the package logger at path (stdout when empty) and sets
// the minimum level. Unknown levels fall back to info.
func InitLogging(path string, level string) {
	var w io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				w = io.MultiWriter(os.Stdout, f)
			} else {
				fmt.Fprintf(os.Stderr, "logger: cannot open %s, using stdout: %v\n", path, err)
			}
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// SetOutput replaces the log sink. Used by tests to capture output.
func SetOutput(w io.Writer) {
	log = log.Output(w)
}

// WithRequestID stores the request id on ctx so every log line of the
// request carries it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if ctx == nil {
		return e
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Info()).Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Warn()).Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Error()).Msgf(format, args...)
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Debug()).Msgf(format, args...)
}
