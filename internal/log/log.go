// Package log provides structured logging of commands, errors and diagnostics.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"yogaday/local-app/internal/model"
)

// LogLevel orders log entries by severity; a Logger writes every level up to
// and including its own. Commands are always written.
type LogLevel int

const (
	LevelCommand LogLevel = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// levels maps each LogLevel to its configuration name and slog level.
var levels = map[LogLevel]struct {
	name string
	slog slog.Level
}{
	LevelCommand: {"command", slog.LevelInfo},
	LevelError:   {"error", slog.LevelError},
	LevelWarn:    {"warn", slog.LevelWarn},
	LevelInfo:    {"info", slog.LevelInfo},
	LevelDebug:   {"debug", slog.LevelDebug},
}

func (l LogLevel) String() string {
	if lv, ok := levels[l]; ok {
		return strings.ToUpper(lv.name)
	}
	return "UNKNOWN"
}

// ParseLevel reads the log_level setting. Unknown values and "command" give
// LevelInfo; "warning" is accepted for warn.
func ParseLevel(s string) LogLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn
	}
	for l, lv := range levels {
		if lv.name == s && l != LevelCommand {
			return l
		}
	}
	return LevelInfo
}

// Fields carries the structured attributes of a log entry.
type Fields map[string]interface{}

// Logger writes JSON log entries to separate command, error and info sinks.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	level         LogLevel
	mu            sync.RWMutex
}

// NewLogger creates a Logger writing into the log folder named by the configuration.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, err
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	l := newLogger(commandFile, errorFile, infoFile, level)
	l.files = files
	return l, nil
}

// NewWriterLogger creates a Logger that sends every sink to the same writer.
func NewWriterLogger(w io.Writer, level LogLevel) *Logger {
	return newLogger(w, w, w, level)
}

// NewDiscardLogger creates a Logger that drops everything.
func NewDiscardLogger() *Logger {
	return newLogger(io.Discard, io.Discard, io.Discard, LevelError)
}

func newLogger(commandW, errorW, infoW io.Writer, level LogLevel) *Logger {
	return &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandW, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errorW, &slog.HandlerOptions{Level: slog.LevelError})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoW, &slog.HandlerOptions{Level: slog.LevelDebug})),
		level:         level,
	}
}

// SetLevel changes the most verbose level that is still written.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) enabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level <= l.level
}

// Command records a command received from an adapter.
func (l *Logger) Command(ctx context.Context, msg string, fields Fields) {
	l.write(ctx, l.commandLogger, LevelCommand, msg, fields)
}

// Error records a failure.
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.write(ctx, l.errorLogger, LevelError, msg, fields)
}

// Warn records an unexpected but tolerated condition.
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.write(ctx, l.infoLogger, LevelWarn, msg, fields)
}

// Info records normal operation.
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.write(ctx, l.infoLogger, LevelInfo, msg, fields)
}

// Debug records detail useful while diagnosing.
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.write(ctx, l.infoLogger, LevelDebug, msg, fields)
}

func (l *Logger) write(ctx context.Context, sink *slog.Logger, level LogLevel, msg string, fields Fields) {
	if level != LevelCommand && !l.enabled(level) {
		return
	}
	sink.Log(ctx, levels[level].slog, msg, fields.attrs()...)
}

// Close closes all log files
func (l *Logger) Close() error {
	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
		}
	}
	l.files = nil
	return firstErr
}

// attrs turns the fields into slog attributes in a stable key order.
func (f Fields) attrs() []any {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		v := f[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
