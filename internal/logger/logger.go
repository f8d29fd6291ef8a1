// Package logger provides leveled, structured logging for starling.
//
// NewSilentLogger discards everything and is what tests pass around. The
// default implementation writes through charmbracelet/log.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config or flag value into a Level.
// Matching is case-insensitive; "warning" and "quiet" are accepted aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "quiet", "off":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// charmLogger adapts charmbracelet/log to Logger.
// The level is shared between a logger and the loggers derived from it,
// so filtering happens here and the charm logger always runs at debug.
type charmLogger struct {
	base  *log.Logger
	state *levelState
}

type levelState struct {
	mu    sync.RWMutex
	level Level
}

func (s *levelState) get() Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// NewLogger creates a logger writing to out at the given level.
// A nil out writes to stderr.
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	base := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Prefix:          "starling",
		Level:           log.DebugLevel,
	})
	l := &charmLogger{base: base, state: &levelState{}}
	l.SetLevel(level)
	return l
}

// NewDefaultLogger creates a logger with Info level writing to stderr
func NewDefaultLogger() Logger {
	return NewLogger(LevelInfo, os.Stderr)
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

// SetLevel sets the minimum logging level
func (l *charmLogger) SetLevel(level Level) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.level = level
}

// WithFields returns a new logger with additional fields
func (l *charmLogger) WithFields(fields ...Field) Logger {
	return &charmLogger{
		base:  l.base.With(keyvals(fields)...),
		state: l.state,
	}
}

func (l *charmLogger) Debug(msg string, fields ...Field) {
	if l.enabled(LevelDebug) {
		l.base.Debug(msg, keyvals(fields)...)
	}
}

func (l *charmLogger) Info(msg string, fields ...Field) {
	if l.enabled(LevelInfo) {
		l.base.Info(msg, keyvals(fields)...)
	}
}

func (l *charmLogger) Warn(msg string, fields ...Field) {
	if l.enabled(LevelWarn) {
		l.base.Warn(msg, keyvals(fields)...)
	}
}

func (l *charmLogger) Error(msg string, fields ...Field) {
	if l.enabled(LevelError) {
		l.base.Error(msg, keyvals(fields)...)
	}
}

func (l *charmLogger) enabled(level Level) bool {
	current := l.state.get()
	return current != LevelSilent && level >= current
}

func keyvals(fields []Field) []any {
	kv := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewDefaultLogger()
)

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Convenience functions using the default logger
func Debug(msg string, fields ...Field) {
	Default().Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	Default().Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	Default().Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	Default().Error(msg, fields...)
}
