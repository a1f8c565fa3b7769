package logger

import (
	"log"
	"os"
	"sync"
)

// Logger is an interface for handling structured log records at different
// severity levels.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoOpLogger satisfies the Logger interface and discards all log messages.
type NoOpLogger struct{}

var _ Logger = (*NoOpLogger)(nil)

func (NoOpLogger) Trace(_ string, _ ...any) {}
func (NoOpLogger) Debug(_ string, _ ...any) {}
func (NoOpLogger) Info(_ string, _ ...any)  {}
func (NoOpLogger) Warn(_ string, _ ...any)  {}
func (NoOpLogger) Error(_ string, _ ...any) {}

var (
	defaultLoggerMtx sync.Mutex
	defaultLogger    Logger = NewSimpleLogger(
		log.New(os.Stderr, "", log.LstdFlags),
		LevelInfo,
	)
)

// Default returns the default Logger.
func Default() Logger {
	defaultLoggerMtx.Lock()
	defer defaultLoggerMtx.Unlock()
	return defaultLogger
}

// SetDefault makes l the default Logger.
func SetDefault(l Logger) {
	defaultLoggerMtx.Lock()
	defer defaultLoggerMtx.Unlock()
	defaultLogger = l
}

// Trace logs at the trace level using the default Logger.
func Trace(msg string, args ...any) {
	Default().Trace(msg, args...)
}

// Debug logs at the debug level using the default Logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at the info level using the default Logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at the warn level using the default Logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at the error level using the default Logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}
