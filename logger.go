package arango

import (
	"fmt"
	"log/slog"
)

// Logger is the narrow logging interface the dispatcher uses to report
// state transitions (new host added, failover triggered, leader redirect
// observed, retries exhausted). It is a field on the Dispatcher rather
// than an ambient global, matching this package's general avoidance of
// process-wide mutable state.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noopLogger discards everything; it is the default when no WithLogger
// option is given.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger as a Logger, for passing to WithLogger. It
// is not the default: without WithLogger the dispatcher uses a no-op
// logger.
func NewSlogLogger(logger *slog.Logger) Logger {
	return slogLogger{logger: logger}
}

func (s slogLogger) Debugf(format string, args ...any) {
	s.logger.Debug(fmt.Sprintf(format, args...))
}

func (s slogLogger) Warnf(format string, args ...any) {
	s.logger.Warn(fmt.Sprintf(format, args...))
}

func (s slogLogger) Errorf(format string, args ...any) {
	s.logger.Error(fmt.Sprintf(format, args...))
}
