package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	mu     sync.RWMutex
)

// InitLogger configures the global logger for the given level (debug, info, warn, error)
func InitLogger(level string) error {
	zapLevel, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	SetLogger(built)
	return nil
}

// SetLogger replaces the global logger. Tests use it to install zap.NewNop or an observer.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the global logger, falling back to a development logger before InitLogger runs
func Logger() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		dev, err := zap.NewDevelopment(zap.AddCallerSkip(1))
		if err != nil {
			dev = zap.NewNop()
		}
		logger = dev
	}
	return logger
}

// Sync flushes buffered log entries
func Sync() {
	_ = Logger().Sync()
}

// Debug logs at debug level. Args are either zap fields or printf arguments for msg.
func Debug(msg string, args ...interface{}) {
	m, fields := split(msg, args)
	Logger().Debug(m, fields...)
}

// Info logs at info level
func Info(msg string, args ...interface{}) {
	m, fields := split(msg, args)
	Logger().Info(m, fields...)
}

// Warn logs at warn level
func Warn(msg string, args ...interface{}) {
	m, fields := split(msg, args)
	Logger().Warn(m, fields...)
}

// Error logs at error level
func Error(msg string, args ...interface{}) {
	m, fields := split(msg, args)
	Logger().Error(m, fields...)
}

// Fatal logs at fatal level and exits the process
func Fatal(msg string, args ...interface{}) {
	m, fields := split(msg, args)
	Logger().Fatal(m, fields...)
}

// split separates zap fields from printf arguments so both call styles work
func split(msg string, args []interface{}) (string, []zap.Field) {
	if len(args) == 0 {
		return msg, nil
	}

	var fields []zap.Field
	var fmtArgs []interface{}
	for _, arg := range args {
		if f, ok := arg.(zap.Field); ok {
			fields = append(fields, f)
			continue
		}
		fmtArgs = append(fmtArgs, arg)
	}

	if len(fmtArgs) > 0 {
		msg = fmt.Sprintf(msg, fmtArgs...)
	}
	return msg, fields
}
