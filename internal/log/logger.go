// Package log is the structured logger used across the client. It wraps
// logrus behind a small facade so packages log through one place and tests
// can redirect output.
package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"nexus/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*options)

type options struct {
	out  io.Writer
	json bool
	file string
}

// WithOutput directs log output to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to JSON formatted entries.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile appends log output to the file at path. The TUI uses this so log
// lines do not tear the rendered screen.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// Logger writes leveled, structured log entries.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger creates a logger writing text entries to stderr unless options
// say otherwise. A file that cannot be opened falls back to stderr.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
		})
	}

	l := &Logger{}
	base.SetOutput(o.out)
	if o.file != "" {
		if err := os.MkdirAll(filepath.Dir(o.file), 0755); err == nil {
			f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				l.file = f
				base.SetOutput(f)
			}
		}
	}
	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the package logger. The previous logger's file, if
// any, is closed.
func Configure(opts ...Option) {
	next := NewLogger(opts...)
	mu.Lock()
	prev := logger
	logger = next
	mu.Unlock()
	prev.Close()
}

// SetDebug enables or disables debug entries for every logger.
func SetDebug(debug bool) {
	mu.Lock()
	isDebug = debug
	mu.Unlock()
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Close releases the log file, if any.
func (l *Logger) Close() {
	if l != nil && l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

// With returns a logger that adds fields to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithError returns a logger carrying err and, for application errors,
// its classification.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var reqErr *errors.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Endpoint() != "" {
			fields = append(fields, F("endpoint", reqErr.Endpoint()))
		}
		if reqErr.Status() != 0 {
			fields = append(fields, F("status", reqErr.Status()))
		}
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Param() != "" {
		fields = append(fields, F("param", cfgErr.Param()))
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	return l.With(fields...)
}

func (l *Logger) Info(msg string) { l.entry.Info(msg) }
func (l *Logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }
func (l *Logger) Warn(msg string) { l.entry.Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }
func (l *Logger) Error(msg string) { l.entry.Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug logs only when debug output is enabled
func (l *Logger) Debug(msg string) {
	if debugEnabled() {
		l.entry.Debug(msg)
	}
}

// Debugf logs a formatted message only when debug output is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	if debugEnabled() {
		l.entry.Debugf(format, args...)
	}
}

func Info(msg string) { current().Info(msg) }
func Infof(format string, args ...interface{}) { current().Infof(format, args...) }
func Warn(msg string) { current().Warn(msg) }
func Warnf(format string, args ...interface{}) { current().Warnf(format, args...) }
func Error(msg string) { current().Error(msg) }
func Errorf(format string, args ...interface{}) { current().Errorf(format, args...) }
func Debug(msg string) { current().Debug(msg) }
func Debugf(format string, args ...interface{}) { current().Debugf(format, args...) }

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package logger carrying err
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	current().WithError(err).Error(msg)
}
