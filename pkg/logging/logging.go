// Package logging holds the process-wide zap logger.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

// Logger returns the shared logger. It is a no-op logger until SetLogger is called.
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
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the shared logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// New builds the logger used by the executables: a development logger when
// verbose, otherwise a production logger at warn level.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

// Named returns a child of the shared logger, e.g. Named("Engine").
func Named(component string) *zap.Logger {
	return Logger().Named(component)
}
