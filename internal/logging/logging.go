package logging

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

var base = zap.NewNop()

// New builds the process logger. Production environments get JSON output,
// everything else the console encoder.
func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// SetBase replaces the logger used by request-scoped loggers.
func SetBase(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	base = l
}

// Base returns the process logger.
func Base() *zap.Logger {
	return base
}

// WithRequestID stores the request ID for loggers created from ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides structured logging for services
type Logger struct {
	z *zap.Logger
}

// FromContext creates a logger with request context
func FromContext(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{z: base.With(zap.String("request_id", requestID))}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.z.Error("operation failed", zap.String("operation", operation), zap.Error(err))
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.z.Sugar().With("operation", operation).Errorf(format, args...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.z.Sugar().With("operation", operation).Infof(format, args...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.z.Sugar().With("operation", operation).Warnf(format, args...)
}
