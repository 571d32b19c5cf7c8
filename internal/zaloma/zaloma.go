// Package zaloma finds rotation matches among six-letter words.
//
// Each word is read as three two-letter pairs. A triple (w1, w2, w3) matches
// when the pairs line up as if the letters were rotated two places at a
// time:
//
//	w1[2:4] == w2[0:2]
//	w1[4:6] == w3[0:2]
//	w2[4:6] == w3[2:4]
//
// Words are taken in ascending order and a triple (i, j, k) is only
// considered when i <= j <= k, so a word may pair with itself.
//
// The scan looks up candidate second and third words by their first pair
// instead of visiting every (j, k). Only pairs that could never match are
// skipped, so the triples and their order are those of the full
// i <= j <= k scan.
package zaloma

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WordLength is the only word length the search considers, in runes.
const WordLength = 6

// Triple is a matching set of three words.
type Triple struct {
	First  string
	Second string
	Third  string
}

func (t Triple) String() string {
	return t.First + " " + t.Second + " " + t.Third
}

// Matches reports whether (a, b, c) is a rotation match. Words that are not
// six runes long never match.
func Matches(a, b, c string) bool {
	pa, ok := split(a)
	if !ok {
		return false
	}
	pb, ok := split(b)
	if !ok {
		return false
	}
	pc, ok := split(c)
	if !ok {
		return false
	}
	return pa[1] == pb[0] && pa[2] == pc[0] && pb[2] == pc[1]
}

// pairs holds the three two-rune pairs of a word.
type pairs [3]string

func split(w string) (pairs, bool) {
	if utf8.RuneCountInString(w) != WordLength {
		return pairs{}, false
	}
	r := []rune(w)
	return pairs{string(r[0:2]), string(r[2:4]), string(r[4:6])}, true
}

// Options tunes a Matcher.
type Options struct {
	// Workers is the number of goroutines scanning the outer word. Zero or
	// one scans sequentially and streams matches as they are found.
	Workers int
}

// Matcher searches a fixed word list.
type Matcher struct {
	words  []string
	pairs  []pairs
	head   map[string][]int // first pair -> ascending word indices
	opts   Options
	logger *zap.Logger
}

// New builds a matcher over the six-rune words in words. Other words are
// dropped; the rest are deduplicated and sorted.
func New(words []string, opts Options, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	seen := make(map[string]struct{}, len(words))
	var kept []string
	for _, w := range words {
		if utf8.RuneCountInString(w) != WordLength {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}
	sort.Strings(kept)

	m := &Matcher{
		words:  kept,
		pairs:  make([]pairs, len(kept)),
		head:   make(map[string][]int),
		opts:   opts,
		logger: logger,
	}
	for i, w := range kept {
		p, _ := split(w)
		m.pairs[i] = p
		m.head[p[0]] = append(m.head[p[0]], i)
	}
	return m
}

// Len returns the number of candidate words.
func (m *Matcher) Len() int { return len(m.words) }

// Words returns the candidate words in search order.
func (m *Matcher) Words() []string {
	return append([]string(nil), m.words...)
}

// Run reports every match to sink in (i, j, k) order and returns how many
// were found. A sink error stops the search and is returned.
func (m *Matcher) Run(ctx context.Context, sink func(Triple) error) (int, error) {
	m.logger.Info("Starting zaloma search",
		zap.Int("words", len(m.words)),
		zap.Int("workers", m.opts.Workers))

	var (
		found int
		err   error
	)
	if m.opts.Workers > 1 {
		found, err = m.runParallel(ctx, sink)
	} else {
		found, err = m.runSequential(ctx, sink)
	}
	if err != nil {
		return found, err
	}

	m.logger.Info("Zaloma search finished", zap.Int("matches", found))
	return found, nil
}

func (m *Matcher) runSequential(ctx context.Context, sink func(Triple) error) (int, error) {
	found := 0
	for i := range m.words {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		for _, t := range m.scan(i) {
			m.logger.Debug("Zaloma match", zap.Stringer("triple", t))
			if err := sink(t); err != nil {
				return found, fmt.Errorf("zaloma sink: %w", err)
			}
			found++
		}
	}
	return found, nil
}

// runParallel scans outer indices on a bounded worker group, then emits the
// per-index results in index order.
func (m *Matcher) runParallel(ctx context.Context, sink func(Triple) error) (int, error) {
	results := make([][]Triple, len(m.words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)
	for i := range m.words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.scan(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	found := 0
	for _, batch := range results {
		for _, t := range batch {
			m.logger.Debug("Zaloma match", zap.Stringer("triple", t))
			if err := sink(t); err != nil {
				return found, fmt.Errorf("zaloma sink: %w", err)
			}
			found++
		}
	}
	return found, nil
}

// scan returns every match whose first word is words[i], ordered by j then k.
func (m *Matcher) scan(i int) []Triple {
	p1 := m.pairs[i]
	var out []Triple
	for _, j := range m.head[p1[1]] {
		if j < i {
			continue
		}
		p2 := m.pairs[j]
		for _, k := range m.head[p1[2]] {
			if k < j {
				continue
			}
			if m.pairs[k][1] != p2[2] {
				continue
			}
			out = append(out, Triple{First: m.words[i], Second: m.words[j], Third: m.words[k]})
		}
	}
	return out
}
