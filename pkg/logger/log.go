// Package logger wraps zap.Logger with the field-slice calling convention
// used across this codebase's services, so the order book core logs the same
// way its siblings do.
package logger

import (
	"fmt"
	"strings"

	pkgerrors "github.com/kavehhm/Multi-Type-Order-Book-Engine/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface wraps the Logger methods so components can depend on an
// interface instead of the concrete type.
type Interface interface {
	Debug(message string, fields ...Field)
	Error(err error, fields ...Field)
	GetZap() *zap.Logger
	Info(message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WithFields(fields ...Field) *Logger
}

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds a key-value pair to be written to the log.
type Field struct {
	Key   string
	Value any
}

// NewField returns a Field with the given key and value.
func NewField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Level represents the severity level of a log line.
type Level string

const (
	// DebugLevel is used for debug messages.
	DebugLevel Level = "debug"
	// InfoLevel is used for informational messages.
	InfoLevel Level = "info"
	// WarnLevel is used for warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel is used for error messages.
	ErrorLevel Level = "error"
)

func (level Level) getZapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options holds configuration for NewLogger.
type Options struct {
	level Level
}

// WithLoggingLevel sets the minimum level that will be logged. Defaults to
// info when not set.
func WithLoggingLevel(level Level) Options {
	return Options{level: level}
}

// NewLogger creates a new Logger instance with the given options.
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.getZapLevel())
		}
	}
	cfg.EncoderConfig.MessageKey = "message"

	built, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger: built}, nil
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap returns the underlying zap.Logger.
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

// Info writes a log line at info severity.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, convertFields(fields...)...)
}

// Warn writes a log line at warn severity.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, convertFields(fields...)...)
}

// Debug writes a log line at debug severity.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, convertFields(fields...)...)
}

// Error writes a log line at error severity, attaching a stack trace when
// the error carries one (anything wrapped through pkg/errors.Wrap).
func (l *Logger) Error(err error, fields ...Field) {
	ce := l.logger.Check(zapcore.ErrorLevel, err.Error())
	if ce == nil {
		return
	}
	if trace := stackTraceOf(err); trace != "" {
		ce.Stack = trace
	}
	ce.Write(convertFields(fields...)...)
}

// stackTraceOf extracts a pkg/errors stack trace from err, if it carries one.
// Errors constructed directly (Rejection, Validation) never do; only errors
// routed through pkg/errors.Wrap do.
func stackTraceOf(err error) string {
	tracer, ok := err.(pkgerrors.StackTracer)
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%+v", tracer.StackTrace()))
}

// WithFields returns a child logger carrying the given fields on every
// subsequent line.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(convertFields(fields...)...)}
}

// convertFields lowers this package's Field slice to zap's, one-to-one.
func convertFields(fields ...Field) []zapcore.Field {
	if len(fields) == 0 {
		return nil
	}
	zapFields := make([]zapcore.Field, len(fields))
	for i, field := range fields {
		zapFields[i] = zap.Any(field.Key, field.Value)
	}
	return zapFields
}
