// Package config loads the lancini configuration from YAML, with environment
// overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aitorres/lancini/internal/lexicon"
	"github.com/aitorres/lancini/internal/search"
	"github.com/aitorres/lancini/internal/sequence"
	"github.com/aitorres/lancini/internal/store"
)

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "lancini.yaml"

// Config holds all lancini configuration.
type Config struct {
	// Characters candidates are built from, in generation order.
	Alphabet string `yaml:"alphabet"`

	Lexicon LexiconConfig `yaml:"lexicon"`
	Search  SearchConfig  `yaml:"search"`
	Store   StoreConfig   `yaml:"store"`
	Zaloma  ZalomaConfig  `yaml:"zaloma"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LexiconConfig configures the word list.
type LexiconConfig struct {
	Path string `yaml:"path"`

	// Words removed after normalization. Nil means lexicon.DefaultExclude.
	Exclude []string `yaml:"exclude,omitempty"`
}

// SearchConfig holds the palindrome search tunables.
type SearchConfig struct {
	MaxLength        int `yaml:"max_length"`
	FlushBufferSize  int `yaml:"flush_buffer_size"`
	StartLengthFloor int `yaml:"start_length_floor"`
}

// StoreConfig selects where accepted palindromes are kept.
type StoreConfig struct {
	Backend string `yaml:"backend"` // csv, sqlite
	Path    string `yaml:"path"`
}

// ZalomaConfig configures the rotation match search.
type ZalomaConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Alphabet: sequence.DefaultAlphabet,

		Lexicon: LexiconConfig{
			Path: filepath.Join("diccionario-espanol-txt", "0_palabras_todas.txt"),
		},

		Search: SearchConfig{
			MaxLength:        search.DefaultMaxLength,
			FlushBufferSize:  search.DefaultFlushBufferSize,
			StartLengthFloor: search.DefaultStartLengthFloor,
		},

		Store: StoreConfig{
			Backend: store.BackendCSV,
			Path:    filepath.Join("data", "palindromes.csv"),
		},

		Zaloma: ZalomaConfig{
			Workers: 1,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LANCINI_LEXICON"); v != "" {
		c.Lexicon.Path = v
	}
	if v := os.Getenv("LANCINI_STORE"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LANCINI_STORE_BACKEND"); v != "" {
		c.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("LANCINI_MAX_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LANCINI_MAX_LENGTH %q: %w", v, err)
		}
		c.Search.MaxLength = n
	}
	if v := os.Getenv("LANCINI_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks the configuration for values the commands cannot run with.
func (c *Config) Validate() error {
	if _, err := sequence.NewAlphabet(c.Alphabet); err != nil {
		return fmt.Errorf("invalid alphabet: %w", err)
	}

	if c.Search.MaxLength < 1 {
		return fmt.Errorf("search.max_length must be at least 1, got %d", c.Search.MaxLength)
	}
	if c.Search.FlushBufferSize < 1 {
		return fmt.Errorf("search.flush_buffer_size must be at least 1, got %d", c.Search.FlushBufferSize)
	}
	if c.Search.StartLengthFloor < 1 {
		return fmt.Errorf("search.start_length_floor must be at least 1, got %d", c.Search.StartLengthFloor)
	}

	validBackend := false
	for _, b := range store.Backends {
		if c.Store.Backend == b {
			validBackend = true
			break
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid store backend: %s (valid: %v)", c.Store.Backend, store.Backends)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path is required")
	}

	if c.Zaloma.Workers < 0 {
		return fmt.Errorf("zaloma.workers must not be negative, got %d", c.Zaloma.Workers)
	}

	return c.Logging.Validate()
}

// SearchEngineConfig returns the engine configuration. Validate must have passed.
func (c *Config) SearchEngineConfig() search.Config {
	return search.Config{
		Alphabet:         sequence.MustAlphabet(c.Alphabet),
		MaxLength:        c.Search.MaxLength,
		FlushBufferSize:  c.Search.FlushBufferSize,
		StartLengthFloor: c.Search.StartLengthFloor,
	}
}

// StoreOptions returns the store selection.
func (c *Config) StoreOptions() store.Options {
	return store.Options{Backend: c.Store.Backend, Path: c.Store.Path}
}

// LexiconOptions returns the loader options, without a logger.
func (c *Config) LexiconOptions() lexicon.Options {
	return lexicon.Options{Exclude: c.Lexicon.Exclude}
}
