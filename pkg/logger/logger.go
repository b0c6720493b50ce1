package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log level
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
	LevelDebug Level = "DEBUG"
)

// Logger provides structured logging backed by zerolog
type Logger struct {
	zl zerolog.Logger
}

// Options configures a Logger
type Options struct {
	Level   string    // "debug", "info", "error"; empty falls back to LOG_LEVEL
	Output  io.Writer // defaults to os.Stdout
	Service string
}

// New creates a new logger writing JSON lines to stdout
func New() *Logger {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a logger with explicit options
func NewWithOptions(opts Options) *Logger {
	level := zerolog.InfoLevel
	raw := opts.Level
	if raw == "" {
		raw = os.Getenv("LOG_LEVEL")
	}
	if raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	service := opts.Service
	if service == "" {
		service = "hello-buttons"
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zl := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger carrying the given fields on every entry
func (l *Logger) With(fields ...Field) *Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		ctx = ctx.Str(f.Key, f.Value)
	}
	return &Logger{zl: ctx.Logger()}
}

// Log writes a structured log entry
func (l *Logger) Log(level Level, message string, fields ...Field) {
	var ev *zerolog.Event
	switch level {
	case LevelError:
		ev = l.zl.Error()
	case LevelDebug:
		ev = l.zl.Debug()
	default:
		ev = l.zl.Info()
	}
	for _, f := range fields {
		ev = ev.Str(f.Key, f.Value)
	}
	ev.Msg(message)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...Field) {
	l.Log(LevelInfo, message, fields...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...Field) {
	l.Log(LevelError, message, fields...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...Field) {
	l.Log(LevelDebug, message, fields...)
}

// Zerolog exposes the underlying zerolog logger
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value string
}

// F creates a Field
func F(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Err creates an "error" Field; a nil error yields an empty value
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error"}
	}
	return Field{Key: "error", Value: err.Error()}
}
