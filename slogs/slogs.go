// Package slogs is the module's internal diagnostic channel. Configuration
// progress, plugin failures and watchdog activity are reported here rather
// than through the application loggers being configured.
package slogs

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	logger   atomic.Value
	levelVar slog.LevelVar
)

func init() {
	levelVar.Set(slog.LevelInfo)
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: &levelVar,
	})))
}

func Logger() *slog.Logger {
	return logger.Load().(*slog.Logger)
}

// SetLogger replaces the diagnostic logger. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	logger.Store(l)
}

// SetLevel adjusts the minimum severity of the default diagnostic handler.
// A replacement handler installed via SetLogger controls its own level.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

func Level() slog.Level {
	return levelVar.Level()
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}
