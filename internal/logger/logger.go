// Package logger provides structured logging for photoquery
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Logger wraps zerolog with the events photoquery reports
type Logger struct {
	zl zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // console output instead of JSON
	Output io.Writer
}

// NewLogger creates a logger writing JSON lines, or console output when
// Pretty is set. Unknown levels fall back to info.
func NewLogger(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return &Logger{
		zl: zerolog.New(out).Level(level).With().
			Timestamp().
			Str("service", "photoquery").
			Logger(),
	}
}

// IsTerminal reports whether w is an interactive terminal, which is when
// pretty output is the sensible default
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// GetZerolog returns the underlying zerolog logger
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zl
}

// Info starts an info event tagged with msg
func (l *Logger) Info(msg string) *zerolog.Event { return l.zl.Info().Str("msg", msg) }

// Debug starts a debug event tagged with msg
func (l *Logger) Debug(msg string) *zerolog.Event { return l.zl.Debug().Str("msg", msg) }

// Warn starts a warning event tagged with msg
func (l *Logger) Warn(msg string) *zerolog.Event { return l.zl.Warn().Str("msg", msg) }

// Error starts an error event tagged with msg
func (l *Logger) Error(msg string) *zerolog.Event { return l.zl.Error().Str("msg", msg) }

// Component returns the zerolog logger handed to a package such as the
// query builder or the find bar
func (l *Logger) Component(name string) zerolog.Logger {
	return l.zl.With().Str("component", name).Logger()
}

// LogQuery logs one /query request. Rejected queries are logged as warnings.
func (l *Logger) LogQuery(text, outcome string, matches int, duration time.Duration, err error) {
	event := l.zl.Info()
	if err != nil {
		event = l.zl.Warn().Err(err)
	}

	event.
		Str("component", "http").
		Str("query", text).
		Str("outcome", outcome).
		Int("matches", matches).
		Dur("duration_ms", duration).
		Msg("Query completed")
}

// LogCatalogLoaded logs catalog statistics after loading
func (l *Logger) LogCatalogLoaded(path string, photos, tags int) {
	l.zl.Info().
		Str("event", "catalog_loaded").
		Str("catalog", path).
		Int("photos", photos).
		Int("tags", tags).
		Msg("Catalog loaded")
}

// LogServerStart logs server startup
func (l *Logger) LogServerStart(port int, catalog string) {
	l.zl.Info().
		Str("event", "server_start").
		Int("port", port).
		Str("catalog", catalog).
		Msg("photoquery server starting")
}

// LogServerShutdown logs server shutdown
func (l *Logger) LogServerShutdown() {
	l.zl.Info().
		Str("event", "server_shutdown").
		Msg("photoquery server shutting down")
}

var (
	globalMu sync.Mutex
	global   *Logger
)

// InitGlobalLogger replaces the process-wide logger, zerolog's included
func InitGlobalLogger(cfg Config) *Logger {
	l := NewLogger(cfg)

	globalMu.Lock()
	global = l
	globalMu.Unlock()

	zlog.Logger = l.zl
	return l
}

// GetGlobalLogger returns the process-wide logger, creating a default one on
// first use
func GetGlobalLogger() *Logger {
	globalMu.Lock()
	l := global
	globalMu.Unlock()

	if l == nil {
		l = InitGlobalLogger(Config{Level: "info", Pretty: IsTerminal(os.Stderr)})
	}
	return l
}
