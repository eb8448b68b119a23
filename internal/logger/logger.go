// Package logger wraps zap so binaries can start with a no-op logger and
// switch to a configured one once the level is known.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapLogger holds the process logger.
type ZapLogger struct {
	// Log is the active logger. It is a no-op until Init succeeds.
	Log *zap.Logger
}

// New returns a ZapLogger backed by a no-op logger.
func New() *ZapLogger {
	return &ZapLogger{Log: zap.NewNop()}
}

// Init replaces Log with a production logger writing to stderr at level.
// Level names are case-insensitive ("debug", "Info", "WARN", ...).
func (l *ZapLogger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = zl
	return nil
}
