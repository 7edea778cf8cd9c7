// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating component loggers
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text or console (default: json)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       bzlog.DefaultLevel().String(),
		Format:      "json",
	}
}

// ConfigFor derives a logger configuration from the application config
func ConfigFor(serviceName string, cfg *config.Config) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	if cfg != nil {
		lc.Level = cfg.General.LogLevel
		lc.Format = cfg.General.LogFormat
	}
	return lc
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *bzlog.Logger {
	level, err := bzlog.ParseLevel(cfg.Level)
	if err != nil {
		level = bzlog.LevelInfo
	}

	format, err := bzlog.ParseFormat(cfg.Format)
	if err != nil {
		format = bzlog.FormatJSON
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return bzlog.NewWithConfig(bzlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// Logger wraps the foundation logger with a key/value API
type Logger struct {
	*bzlog.Logger
	name string
}

// New creates a logger with the default configuration
func New(name string) *Logger {
	return Wrap(NewLogger(DefaultLoggerConfig(name)))
}

// NewFromConfig creates a logger configured by the application config
func NewFromConfig(name string, cfg *config.Config) *Logger {
	return Wrap(NewLogger(ConfigFor(name, cfg)))
}

// Wrap adapts an existing foundation logger
func Wrap(l *bzlog.Logger) *Logger {
	if l == nil {
		l = bzlog.NewNop()
	}
	return &Logger{Logger: l, name: l.Name()}
}

// Foundation returns the underlying foundation logger
func (l *Logger) Foundation() *bzlog.Logger {
	return l.Logger
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{
		Logger: l.Logger.WithLevel(level.foundation()),
		name:   l.name,
	}
}

// With returns a new logger carrying the given key/value pairs
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.WithFields(toFields(keysAndValues...)),
		name:   l.name,
	}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to bzlog.Fields.
// Non-string keys and a trailing key without value are dropped.
func toFields(keysAndValues ...interface{}) bzlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(bzlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
