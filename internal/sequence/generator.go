package sequence

import (
	"iter"
	"math"
)

// Generator yields all strings of a fixed length over an alphabet.
//
// The first string is the alphabet's first character repeated; each call to
// Next advances the rightmost position and carries to the left, like an
// odometer. This produces exactly the order of the recursive "every
// length-(n-1) string extended by every character" formulation without any
// recursion.
//
// Length 0 yields a single empty string. A negative length yields nothing.
type Generator struct {
	alphabet []rune
	length   int

	idx     []int
	buf     []rune
	started bool
	done    bool
}

// NewGenerator returns a generator positioned before the first string.
func NewGenerator(a Alphabet, length int) *Generator {
	g := &Generator{alphabet: a.runes, length: length}
	g.Reset()
	return g
}

// Reset restarts the sequence from the beginning.
func (g *Generator) Reset() {
	g.started = false
	g.done = g.length < 0 || len(g.alphabet) == 0
	if g.length > 0 {
		g.idx = make([]int, g.length)
		g.buf = make([]rune, g.length)
	}
}

// Length returns the length of every generated string, in runes.
func (g *Generator) Length() int { return g.length }

// Next returns the next string, or false once the sequence is exhausted.
func (g *Generator) Next() (string, bool) {
	if g.done {
		return "", false
	}

	if !g.started {
		g.started = true
		if g.length == 0 {
			g.done = true
			return "", true
		}
		for i := range g.buf {
			g.idx[i] = 0
			g.buf[i] = g.alphabet[0]
		}
		return string(g.buf), true
	}

	for p := g.length - 1; p >= 0; p-- {
		g.idx[p]++
		if g.idx[p] < len(g.alphabet) {
			g.buf[p] = g.alphabet[g.idx[p]]
			return string(g.buf), true
		}
		g.idx[p] = 0
		g.buf[p] = g.alphabet[0]
	}

	g.done = true
	return "", false
}

// Total returns |alphabet|^length, saturating at math.MaxUint64.
func (g *Generator) Total() uint64 {
	if g.length < 0 || len(g.alphabet) == 0 {
		return 0
	}
	base := uint64(len(g.alphabet))
	total := uint64(1)
	for i := 0; i < g.length; i++ {
		if total > math.MaxUint64/base {
			return math.MaxUint64
		}
		total *= base
	}
	return total
}

// All returns the sequence as an iterator. Each call to the iterator starts
// from the first string, so the sequence can be ranged over repeatedly.
func All(a Alphabet, length int) iter.Seq[string] {
	return func(yield func(string) bool) {
		g := NewGenerator(a, length)
		for {
			s, ok := g.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}
