package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aitorres/lancini/internal/config"
)

func TestGetNamesLoggerByCategory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewWithLogger(zap.New(core), config.LoggingConfig{})

	for _, cat := range Categories {
		f.Get(cat).Info("hello")
	}

	entries := logs.All()
	require.Len(t, entries, len(Categories))
	for i, cat := range Categories {
		assert.Equal(t, string(cat), entries[i].LoggerName)
	}
}

func TestDisabledCategoryIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := NewWithLogger(zap.New(core), config.LoggingConfig{
		Categories: map[string]bool{"search": false},
	})

	f.Get(CategorySearch).Info("dropped")
	f.Get(CategoryStore).Info("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	f := NewWithLogger(zap.New(core), config.LoggingConfig{}).With(zap.String("run_id", "r1"))

	f.Get(CategoryBoot).Info("started")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "r1", logs.All()[0].ContextMap()["run_id"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Level: "info", Format: "xml"}, false)
	assert.Error(t, err)
}

func TestNewLevels(t *testing.T) {
	f, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.False(t, f.Base().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, f.Base().Core().Enabled(zapcore.WarnLevel))

	f, err = New(config.LoggingConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, f.Base().Core().Enabled(zapcore.DebugLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lancini.log")

	f, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path}, false)
	require.NoError(t, err)

	f.Get(CategoryStore).Info("flushed", zap.Int("count", 3))
	_ = f.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.Contains(t, line, `"logger":"store"`)
	assert.Contains(t, line, `"msg":"flushed"`)
	assert.Contains(t, line, `"count":3`)
}

func TestNewNop(t *testing.T) {
	f := NewNop()
	assert.NotPanics(t, func() { f.Get(CategoryZaloma).Error("nothing") })
}
