package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitorres/lancini/internal/sequence"
	"github.com/aitorres/lancini/internal/store"
)

// clearEnv keeps the caller's environment out of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LANCINI_LEXICON", "LANCINI_STORE", "LANCINI_STORE_BACKEND",
		"LANCINI_MAX_LENGTH", "LANCINI_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, sequence.DefaultAlphabet, cfg.Alphabet)
	assert.Equal(t, 10, cfg.Search.MaxLength)
	assert.Equal(t, 20, cfg.Search.FlushBufferSize)
	assert.Equal(t, 3, cfg.Search.StartLengthFloor)
	assert.Equal(t, store.BackendCSV, cfg.Store.Backend)
	assert.Equal(t, filepath.Join("data", "palindromes.csv"), cfg.Store.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", "lancini.yaml")

	cfg := DefaultConfig()
	cfg.Alphabet = "ab"
	cfg.Search.MaxLength = 6
	cfg.Store.Backend = store.BackendSQLite
	cfg.Store.Path = "data/palindromes.db"
	cfg.Logging.Categories = map[string]bool{"search": false}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lancini.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  max_length: 4\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Search.MaxLength)
	assert.Equal(t, 20, cfg.Search.FlushBufferSize)
	assert.Equal(t, sequence.DefaultAlphabet, cfg.Alphabet)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lancini.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LANCINI_LEXICON", "/words.txt")
	t.Setenv("LANCINI_STORE", "/tmp/p.db")
	t.Setenv("LANCINI_STORE_BACKEND", "SQLite")
	t.Setenv("LANCINI_MAX_LENGTH", "7")
	t.Setenv("LANCINI_LOG_LEVEL", "DEBUG")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/words.txt", cfg.Lexicon.Path)
	assert.Equal(t, "/tmp/p.db", cfg.Store.Path)
	assert.Equal(t, store.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 7, cfg.Search.MaxLength)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfig_EnvOverrideBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("LANCINI_MAX_LENGTH", "ten")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "LANCINI_MAX_LENGTH")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"duplicate alphabet rune", func(c *Config) { c.Alphabet = "aba" }, "invalid alphabet"},
		{"empty alphabet", func(c *Config) { c.Alphabet = "" }, "invalid alphabet"},
		{"zero max length", func(c *Config) { c.Search.MaxLength = 0 }, "max_length"},
		{"zero buffer", func(c *Config) { c.Search.FlushBufferSize = 0 }, "flush_buffer_size"},
		{"zero floor", func(c *Config) { c.Search.StartLengthFloor = 0 }, "start_length_floor"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "invalid store backend"},
		{"empty store path", func(c *Config) { c.Store.Path = " " }, "store.path"},
		{"negative workers", func(c *Config) { c.Zaloma.Workers = -1 }, "zaloma.workers"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfig_Derived(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Alphabet = "ab"
	cfg.Search.MaxLength = 5
	cfg.Lexicon.Exclude = []string{"x"}

	sc := cfg.SearchEngineConfig()
	assert.Equal(t, "ab", sc.Alphabet.String())
	assert.Equal(t, 5, sc.MaxLength)

	assert.Equal(t, store.Options{Backend: store.BackendCSV, Path: cfg.Store.Path}, cfg.StoreOptions())
	assert.Equal(t, []string{"x"}, cfg.LexiconOptions().Exclude)
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	assert.True(t, lc.IsCategoryEnabled("search"))

	lc.Categories = map[string]bool{"search": false, "store": true}
	assert.False(t, lc.IsCategoryEnabled("search"))
	assert.True(t, lc.IsCategoryEnabled("store"))
	assert.True(t, lc.IsCategoryEnabled("zaloma"))
}
