// Package logx provides structured logging for the indexer. It wraps
// logrus with OP_NET-specific conveniences: per-subsystem child loggers
// via a Logger/Module idiom.
package logx

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus.Entry with the Module/With child-logger idiom.
type Logger struct {
	inner *logrus.Entry
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(logrus.InfoLevel)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level logrus.Level) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	return &Logger{inner: logrus.NewEntry(l)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger { return defaultLogger }

// Module returns a child logger bound to a "module" field, the primary way
// subsystems (blockpipeline, mempool, wsproto, ...) get their own logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.WithField("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(fields logrus.Fields) *Logger {
	return &Logger{inner: l.inner.WithFields(fields)}
}

func (l *Logger) Debug(args ...any) { l.inner.Debug(args...) }
func (l *Logger) Info(args ...any)  { l.inner.Info(args...) }
func (l *Logger) Warn(args ...any)  { l.inner.Warn(args...) }
func (l *Logger) Error(args ...any) { l.inner.Error(args...) }

func Debug(args ...any) { defaultLogger.Debug(args...) }
func Info(args ...any)  { defaultLogger.Info(args...) }
func Warn(args ...any)  { defaultLogger.Warn(args...) }
func Error(args ...any) { defaultLogger.Error(args...) }
