// Package lexicon provides the immutable word set palindromes are validated
// against, and the loader that builds it from a plain word list.
package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Lexicon is a read-only set of lowercase words. It is safe for concurrent
// readers once built.
type Lexicon struct {
	words  map[string]struct{}
	sorted []string
	maxLen int // longest word, in runes
}

// New builds a lexicon from words. Words are lowercased, trimmed and
// deduplicated; empty entries are dropped. No other filtering happens here,
// see Normalize for the corpus rules.
func New(words []string) *Lexicon {
	lex := &Lexicon{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := lex.words[w]; dup {
			continue
		}
		lex.words[w] = struct{}{}
		lex.sorted = append(lex.sorted, w)
		if n := utf8.RuneCountInString(w); n > lex.maxLen {
			lex.maxLen = n
		}
	}
	sort.Strings(lex.sorted)
	return lex
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// IsEmpty reports whether the lexicon has no words.
func (l *Lexicon) IsEmpty() bool { return l.Len() == 0 }

// Contains reports whether word is in the lexicon.
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[word]
	return ok
}

// MaxWordLen returns the length of the longest word, in runes.
func (l *Lexicon) MaxWordLen() int {
	if l == nil {
		return 0
	}
	return l.maxLen
}

// Words returns every word in ascending order.
func (l *Lexicon) Words() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.sorted))
	copy(out, l.sorted)
	return out
}

// WithLength returns the words of exactly n runes, in ascending order.
func (l *Lexicon) WithLength(n int) []string {
	if l == nil {
		return nil
	}
	var out []string
	for _, w := range l.sorted {
		if utf8.RuneCountInString(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// Prefixes returns the words that are prefixes of s, shortest first.
// Prefixes are cut on rune boundaries and never exceed MaxWordLen runes.
func (l *Lexicon) Prefixes(s string) []string {
	if l == nil || l.maxLen == 0 {
		return nil
	}
	var out []string
	runes := 0
	for i := range s {
		if i == 0 {
			continue
		}
		runes++
		if runes > l.maxLen {
			return out
		}
		if _, ok := l.words[s[:i]]; ok {
			out = append(out, s[:i])
		}
	}
	if s != "" && runes+1 <= l.maxLen {
		if _, ok := l.words[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
