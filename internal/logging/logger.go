// Package logging builds the zap loggers used across lancini.
// Each subsystem logs under its own category; categories can be switched off
// in the logging section of the config, in which case they get a no-op
// logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aitorres/lancini/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Command startup, config
	CategoryLexicon Category = "lexicon" // Word list loading
	CategorySearch  Category = "search"  // Palindrome search engine
	CategoryStore   Category = "store"   // Palindrome persistence
	CategoryZaloma  Category = "zaloma"  // Rotation match search
)

// Categories lists every category.
var Categories = []Category{
	CategoryBoot, CategoryLexicon, CategorySearch, CategoryStore, CategoryZaloma,
}

// Factory hands out category loggers derived from one base logger.
type Factory struct {
	base *zap.Logger
	cfg  config.LoggingConfig
}

// New builds a factory from the logging config. verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*Factory, error) {
	zc := zap.NewProductionConfig()
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	base, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &Factory{base: base, cfg: cfg}, nil
}

// NewWithLogger wraps an existing logger, for tests and embedding.
func NewWithLogger(base *zap.Logger, cfg config.LoggingConfig) *Factory {
	if base == nil {
		base = zap.NewNop()
	}
	return &Factory{base: base, cfg: cfg}
}

// NewNop returns a factory that discards everything.
func NewNop() *Factory {
	return NewWithLogger(zap.NewNop(), config.LoggingConfig{})
}

// Get returns the logger for a category, or a no-op logger when the
// category is disabled.
func (f *Factory) Get(category Category) *zap.Logger {
	if !f.cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}
	return f.base.Named(string(category))
}

// With returns a factory whose loggers all carry fields.
func (f *Factory) With(fields ...zap.Field) *Factory {
	return &Factory{base: f.base.With(fields...), cfg: f.cfg}
}

// Base returns the uncategorized logger.
func (f *Factory) Base() *zap.Logger { return f.base }

// Sync flushes buffered entries.
func (f *Factory) Sync() error { return f.base.Sync() }
