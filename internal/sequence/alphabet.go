// Package sequence enumerates every fixed-length string over an ordered
// alphabet. Enumeration is lazy: an odometer over alphabet indices produces
// one candidate at a time, in the lexicographic order induced by the
// alphabet's declared order.
package sequence

import (
	"errors"
	"fmt"
)

// DefaultAlphabet holds the lowercase Spanish letters, accented vowels included.
const DefaultAlphabet = "abcdefghijklmnñopqrstuvwxyzáéíóúü"

var (
	// ErrEmptyAlphabet is returned when an alphabet has no characters.
	ErrEmptyAlphabet = errors.New("alphabet is empty")

	// ErrDuplicateRune is returned when a character appears twice in an alphabet.
	ErrDuplicateRune = errors.New("alphabet has a duplicate character")
)

// Alphabet is an ordered set of distinct runes.
type Alphabet struct {
	runes []rune
}

// NewAlphabet validates chars and returns the alphabet in declared order.
func NewAlphabet(chars string) (Alphabet, error) {
	runes := []rune(chars)
	if len(runes) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}

	seen := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		if _, dup := seen[r]; dup {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateRune, r)
		}
		seen[r] = struct{}{}
	}
	return Alphabet{runes: runes}, nil
}

// MustAlphabet is NewAlphabet for compile-time constants; it panics on error.
func MustAlphabet(chars string) Alphabet {
	a, err := NewAlphabet(chars)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of characters.
func (a Alphabet) Len() int { return len(a.runes) }

// Runes returns a copy of the characters in declared order.
func (a Alphabet) Runes() []rune {
	out := make([]rune, len(a.runes))
	copy(out, a.runes)
	return out
}

func (a Alphabet) String() string { return string(a.runes) }
