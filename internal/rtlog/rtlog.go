// Package rtlog provides control-thread structured logging. It must never
// be called from the realtime audio callback (§5: no syscalls on T_a) —
// callers on T_a report through pkg/diag counters instead, which the
// control thread can sample.
package rtlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the control-thread structured logger.
type Logger struct {
	l *log.Logger
}

// New creates a Logger writing to stderr with the given component name
// attached to every line (mirrors the "[component] message" convention
// the teacher framework uses for its host-backed logger).
func New(component string) *Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          component,
	})
	return &Logger{l: l}
}

func (lg *Logger) Debug(msg string, kv ...any) { lg.l.Debug(msg, kv...) }
func (lg *Logger) Info(msg string, kv ...any)  { lg.l.Info(msg, kv...) }
func (lg *Logger) Warn(msg string, kv ...any)  { lg.l.Warn(msg, kv...) }
func (lg *Logger) Error(msg string, kv ...any) { lg.l.Error(msg, kv...) }
