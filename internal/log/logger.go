// Package log is casper's structured logger. It keeps a small, package-level
// API in front of logrus so call sites never import logrus directly.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"casper/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
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

// Logger writes leveled, structured entries through logrus.
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
	file   *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput redirects the logger to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile appends to path in addition to stdout.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", path, err)
			return
		}
		l.file = f
		l.base.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// NewLogger creates a logger writing text entries to stdout.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&textFormatter{})

	l := &Logger{base: base, fields: logrus.Fields{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// With returns a child logger carrying the extra fields.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, fields: merged, file: l.file}
}

// WithContext is reserved for request-scoped fields; it returns l unchanged.
func (l *Logger) WithContext(_ context.Context) *Logger {
	return l
}

func (l *Logger) Info(msg string) {
	l.emit(logrus.InfoLevel, msg, 2)
}

func (l *Logger) Warn(msg string) {
	l.emit(logrus.WarnLevel, msg, 2)
}

func (l *Logger) Error(msg string) {
	l.emit(logrus.ErrorLevel, msg, 2)
}

func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.emit(logrus.DebugLevel, msg, 2)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(logrus.InfoLevel, fmt.Sprintf(format, args...), 2)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(logrus.WarnLevel, fmt.Sprintf(format, args...), 2)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(logrus.ErrorLevel, fmt.Sprintf(format, args...), 2)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.emit(logrus.DebugLevel, fmt.Sprintf(format, args...), 2)
	}
}

// emit logs msg, tagging it with the file:line found skip frames up.
func (l *Logger) emit(level logrus.Level, msg string, skip int) {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	if _, file, line, ok := runtime.Caller(skip); ok {
		fields["caller"] = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	l.base.WithFields(fields).Log(level, msg)
}

// Info logs a formatted message at info level.
func Info(format string, args ...interface{}) {
	logger.emit(logrus.InfoLevel, sprintf(format, args), 2)
}

// Infof is an alias of Info.
func Infof(format string, args ...interface{}) {
	logger.emit(logrus.InfoLevel, sprintf(format, args), 2)
}

// Warn logs a formatted warning.
func Warn(format string, args ...interface{}) {
	logger.emit(logrus.WarnLevel, sprintf(format, args), 2)
}

// Warnf is an alias of Warn.
func Warnf(format string, args ...interface{}) {
	logger.emit(logrus.WarnLevel, sprintf(format, args), 2)
}

// Error logs a formatted error message.
func Error(format string, args ...interface{}) {
	logger.emit(logrus.ErrorLevel, sprintf(format, args), 2)
}

// Errorf is an alias of Error.
func Errorf(format string, args ...interface{}) {
	logger.emit(logrus.ErrorLevel, sprintf(format, args), 2)
}

// Debug logs a formatted message when debug output is enabled.
func Debug(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.emit(logrus.DebugLevel, sprintf(format, args), 2)
	}
}

// Debugf is an alias of Debug.
func Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.emit(logrus.DebugLevel, sprintf(format, args), 2)
	}
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger annotated with err and, for
// application errors, its kind and subject.
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}

	fields := []Field{F("error", err.Error()), F("error_kind", int(errors.KindOf(err)))}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).emit(logrus.ErrorLevel, msg, 2)
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// textFormatter renders "[timestamp] LEVEL: message key=value ...".
type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format("2006-01-02 15:04:05"), strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
