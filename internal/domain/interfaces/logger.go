// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Level orders log severities
type Level int

// Log levels, lowest first
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// WriterLogger writes "LEVEL: msg key=value" lines to an io.Writer.
// Messages below MinLevel are dropped. Safe for concurrent use.
type WriterLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel Level
}

// NewWriterLogger creates a logger writing to out
func NewWriterLogger(out io.Writer, minLevel Level) *WriterLogger {
	return &WriterLogger{out: out, minLevel: minLevel}
}

// Debug logs debug-level messages
func (w *WriterLogger) Debug(msg string, fields ...Field) {
	w.log(LevelDebug, msg, fields)
}

// Info logs informational messages
func (w *WriterLogger) Info(msg string, fields ...Field) {
	w.log(LevelInfo, msg, fields)
}

// Warn logs warning messages
func (w *WriterLogger) Warn(msg string, fields ...Field) {
	w.log(LevelWarn, msg, fields)
}

func (w *WriterLogger) Error(msg string, fields ...Field) {
	w.log(LevelError, msg, fields)
}

func (w *WriterLogger) log(level Level, msg string, fields []Field) {
	if level < w.minLevel {
		return
	}

	var b strings.Builder
	b.WriteString(level.String())
	b.WriteString(": ")
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteByte('\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	//nolint:errcheck // Best effort logging
	io.WriteString(w.out, b.String())
}
