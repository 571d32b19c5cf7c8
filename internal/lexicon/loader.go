package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// DefaultExclude lists entries of the Spanish word list that are letters
// rather than words. Leaving them in would let almost any string be spelled
// out one consonant at a time.
var DefaultExclude = []string{
	"b", "c", "d", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "ñ", "p", "q", "r", "s", "t", "v", "w", "x", "z",
}

// Options controls how a word list is turned into a lexicon.
type Options struct {
	// Exclude is removed from the lexicon after filtering. Nil means
	// DefaultExclude; an empty non-nil slice excludes nothing.
	Exclude []string

	// Logger receives load progress. Nil disables logging.
	Logger *zap.Logger
}

func (o Options) exclude() []string {
	if o.Exclude == nil {
		return DefaultExclude
	}
	return o.Exclude
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Load reads a word list with one word per line. A missing file yields an
// empty lexicon and a warning; callers decide whether that is fatal.
func Load(path string, opts Options) (*Lexicon, error) {
	log := opts.logger()
	log.Info("Loading lexicon", zap.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("No lexicon found", zap.String("path", path))
			return New(nil), nil
		}
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer f.Close()

	lex, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	log.Info("Lexicon loaded", zap.Int("words", lex.Len()), zap.Int("max_word_len", lex.MaxWordLen()))
	return lex, nil
}

// Read builds a lexicon from a word list stream.
func Read(r io.Reader, opts Options) (*Lexicon, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(Normalize(raw, opts.exclude())), nil
}

// Normalize lowercases and trims raw entries, keeps only non-empty ASCII
// letter words, deduplicates them and removes exclude.
func Normalize(raw []string, exclude []string) []string {
	drop := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		drop[strings.ToLower(w)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if !isASCIIWord(w) {
			continue
		}
		if _, skip := drop[w]; skip {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func isASCIIWord(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if c := w[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
