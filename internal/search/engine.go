// Package search runs the palindrome search: every candidate of every length
// in range is generated, filtered, segmented into lexicon words and, when
// accepted, buffered and appended to a store.
//
// A run resumes from the state already in the store. Whatever is buffered
// when the run ends, successfully or not, is flushed before Run returns.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/aitorres/lancini/internal/lexicon"
	"github.com/aitorres/lancini/internal/palindrome"
	"github.com/aitorres/lancini/internal/sequence"
	"github.com/aitorres/lancini/internal/store"
)

// Defaults for Config.
const (
	DefaultMaxLength        = 10
	DefaultFlushBufferSize  = 20
	DefaultStartLengthFloor = 3
)

// ErrEmptyLexicon is returned when the engine is given no words to validate
// phrases against.
var ErrEmptyLexicon = errors.New("lexicon is empty")

// Config holds the search tunables.
type Config struct {
	Alphabet         sequence.Alphabet
	MaxLength        int
	FlushBufferSize  int
	StartLengthFloor int
}

// DefaultConfig returns the stock tunables over the default alphabet.
func DefaultConfig() Config {
	return Config{
		Alphabet:         sequence.MustAlphabet(sequence.DefaultAlphabet),
		MaxLength:        DefaultMaxLength,
		FlushBufferSize:  DefaultFlushBufferSize,
		StartLengthFloor: DefaultStartLengthFloor,
	}
}

func (c Config) withDefaults() Config {
	if c.Alphabet.Len() == 0 {
		c.Alphabet = sequence.MustAlphabet(sequence.DefaultAlphabet)
	}
	if c.MaxLength <= 0 {
		c.MaxLength = DefaultMaxLength
	}
	if c.FlushBufferSize <= 0 {
		c.FlushBufferSize = DefaultFlushBufferSize
	}
	if c.StartLengthFloor <= 0 {
		c.StartLengthFloor = DefaultStartLengthFloor
	}
	return c
}

// State is the engine's lifecycle phase.
type State int

const (
	StateInitializing State = iota
	StateGenerating
	StateFlushing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateGenerating:
		return "generating"
	case StateFlushing:
		return "flushing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stats summarizes a run.
type Stats struct {
	StartLength      int
	LengthsCompleted int
	Candidates       uint64
	Palindromes      uint64
	SkippedKnown     uint64
	Unsegmentable    uint64
	Irrelevant       uint64
	Accepted         uint64
	Flushes          int
}

// Engine searches for segmentable palindromes. An Engine runs once at a
// time; it holds read-only references to the lexicon and the store.
type Engine struct {
	cfg       Config
	lex       *lexicon.Lexicon
	store     store.Store
	segmenter *palindrome.Segmenter
	logger    *zap.Logger

	state  State
	known  map[string]struct{}
	buffer []palindrome.Record
	stats  Stats
}

// New returns an engine. A nil logger discards output.
func New(cfg Config, lex *lexicon.Lexicon, st store.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:       cfg,
		lex:       lex,
		store:     st,
		segmenter: palindrome.NewSegmenter(lex),
		logger:    logger,
	}
}

// State returns the current lifecycle phase.
func (e *Engine) State() State { return e.state }

// StartLength returns the first length a run over known should generate:
// the longest known candidate, or floor when nothing is known.
//
// Shorter lengths are not revisited even if an earlier run stopped part way
// through one of them.
func StartLength(known map[string]struct{}, floor int) int {
	if n := store.MaxLength(known); n > 0 {
		return n
	}
	return floor
}

// Run searches every length from the resume point up to MaxLength. On any
// exit the pending buffer is appended to the store; a failure there is
// combined with the run error.
func (e *Engine) Run(ctx context.Context) (stats Stats, err error) {
	e.state = StateInitializing
	e.stats = Stats{}
	e.buffer = e.buffer[:0]

	if e.lex.IsEmpty() {
		return e.stats, ErrEmptyLexicon
	}

	known, err := e.store.Load(ctx)
	if err != nil {
		return e.stats, fmt.Errorf("failed to load palindromes: %w", err)
	}
	e.known = known
	e.stats.StartLength = StartLength(known, e.cfg.StartLengthFloor)

	e.logger.Info("Starting palindrome search",
		zap.Int("start_length", e.stats.StartLength),
		zap.Int("max_length", e.cfg.MaxLength),
		zap.Int("known", len(known)),
		zap.Int("lexicon_words", e.lex.Len()),
		zap.Stringer("alphabet", e.cfg.Alphabet))

	defer func() {
		e.state = StateFlushing
		// The run context may already be cancelled; the last flush must still land.
		ferr := e.flush(context.WithoutCancel(ctx))

		if r := recover(); r != nil {
			e.state = StateDone
			e.logger.Error("Palindrome search panicked",
				zap.Any("panic", r),
				zap.Uint64("accepted", e.stats.Accepted),
				zap.Int("flushes", e.stats.Flushes),
				zap.NamedError("flush_error", ferr))
			panic(r)
		}

		if ferr != nil {
			if err == nil {
				err = ferr
			} else {
				err = multierror.Append(err, ferr)
			}
		}
		e.state = StateDone
		stats = e.stats

		fields := []zap.Field{
			zap.Int("lengths_completed", stats.LengthsCompleted),
			zap.Uint64("candidates", stats.Candidates),
			zap.Uint64("accepted", stats.Accepted),
			zap.Int("flushes", stats.Flushes),
		}
		if err != nil {
			e.logger.Warn("Palindrome search stopped", append(fields, zap.Error(err))...)
			return
		}
		e.logger.Info("Palindrome search finished", fields...)
	}()

	e.state = StateGenerating
	for length := e.stats.StartLength; length <= e.cfg.MaxLength; length++ {
		if err := e.searchLength(ctx, length); err != nil {
			return e.stats, err
		}
		e.stats.LengthsCompleted++
	}
	return e.stats, nil
}

func (e *Engine) searchLength(ctx context.Context, length int) error {
	gen := sequence.NewGenerator(e.cfg.Alphabet, length)
	e.logger.Info("Generating candidates",
		zap.Int("length", length),
		zap.Uint64("total", gen.Total()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		candidate, ok := gen.Next()
		if !ok {
			return nil
		}
		e.stats.Candidates++

		if !palindrome.IsPalindrome(candidate) {
			continue
		}
		e.stats.Palindromes++

		if _, seen := e.known[candidate]; seen {
			e.stats.SkippedKnown++
			e.logger.Debug("Skipping known palindrome", zap.String("candidate", candidate))
			continue
		}

		words, ok := e.segmenter.SegmentWords(candidate)
		if !ok {
			e.stats.Unsegmentable++
			continue
		}
		if !palindrome.IsRelevant(words) {
			e.stats.Irrelevant++
			continue
		}

		rec := palindrome.Record{Candidate: candidate, Phrase: strings.Join(words, " ")}
		e.known[candidate] = struct{}{}
		e.buffer = append(e.buffer, rec)
		e.stats.Accepted++
		e.logger.Info("Palindrome accepted",
			zap.String("candidate", rec.Candidate),
			zap.String("phrase", rec.Phrase))

		if len(e.buffer) >= e.cfg.FlushBufferSize {
			if err := e.flush(ctx); err != nil {
				return err
			}
		}
	}
}

// flush appends the buffer to the store and clears it. The buffer is kept
// when the append fails.
func (e *Engine) flush(ctx context.Context) error {
	if len(e.buffer) == 0 {
		return nil
	}
	if err := e.store.Append(ctx, e.buffer); err != nil {
		return fmt.Errorf("failed to store %d palindromes: %w", len(e.buffer), err)
	}
	e.stats.Flushes++
	e.logger.Debug("Flushed palindromes", zap.Int("count", len(e.buffer)))
	e.buffer = e.buffer[:0]
	return nil
}
