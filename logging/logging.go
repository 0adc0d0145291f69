// Package logging builds zap loggers writing to the console or to systemd-journald,
// with per-child log levels configured via [Config].
package logging

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging creates named child loggers sharing one output.
type Logging struct {
	logger  *zap.Logger
	name    string
	options Options
	newCore func(zapcore.LevelEnabler) zapcore.Core

	mu       sync.Mutex
	children map[string]*zap.Logger
}

// NewLogging returns a new Logging for the application with the given name.
// The name is used as logger name and, for journald output, as syslog identifier.
func NewLogging(name string, c Config) (*Logging, error) {
	return newLogging(name, c, zapcore.Lock(os.Stderr))
}

func newLogging(name string, c Config, console zapcore.WriteSyncer) (*Logging, error) {
	var newCore func(zapcore.LevelEnabler) zapcore.Core

	switch c.Output {
	case CONSOLE:
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		newCore = func(enab zapcore.LevelEnabler) zapcore.Core {
			return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), console, enab)
		}
	case JOURNAL:
		newCore = func(enab zapcore.LevelEnabler) zapcore.Core {
			return NewJournaldCore(name, enab)
		}
	default:
		return nil, errors.WithStack(AssertOutput(c.Output))
	}

	return &Logging{
		logger:   zap.New(newCore(zap.NewAtomicLevelAt(c.Level))).Named(name),
		name:     name,
		options:  c.Options,
		newCore:  newCore,
		children: make(map[string]*zap.Logger),
	}, nil
}

// GetLogger returns the root logger.
func (l *Logging) GetLogger() *zap.Logger {
	return l.logger
}

// GetChildLogger returns a named child logger.
// Log levels configured for the name in [Options] take precedence over the default level.
func (l *Logging) GetChildLogger(name string) *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if logger, ok := l.children[name]; ok {
		return logger
	}

	logger := l.logger.Named(name)
	if level, ok := l.options[name]; ok {
		logger = zap.New(l.newCore(zap.NewAtomicLevelAt(level))).Named(l.name).Named(name)
	}

	l.children[name] = logger

	return logger
}

// Sync flushes buffered log entries of the root logger.
func (l *Logging) Sync() error {
	return l.logger.Sync()
}
