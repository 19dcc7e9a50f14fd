package logger

import (
	"sync"

	corelogger "github.com/kilianp07/roadrisk/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

var (
	mu       sync.RWMutex
	defaults Options
)

// Configure sets the options used by New. It is normally called once at
// startup with the values from the configuration file.
func Configure(opts Options) {
	mu.Lock()
	defaults = opts
	mu.Unlock()
}

// New returns a Logger for the given component using the configured options.
func New(component string) Logger {
	mu.RLock()
	opts := defaults
	mu.RUnlock()
	return NewZerologLogger(component, opts)
}
