// Package palindrome holds the pure predicates of the palindrome search:
// palindrome detection, phrase segmentation over a word index, and the
// relevance check that drops phrases made only of single letters.
package palindrome

import (
	"strings"
	"unicode/utf8"
)

// Record is an accepted palindrome with the phrase it decomposes into.
type Record struct {
	Candidate string
	Phrase    string
}

// Words splits the phrase back into its words.
func (r Record) Words() []string { return strings.Fields(r.Phrase) }

// IsPalindrome reports whether s reads the same forward and backward,
// comparing runes. The empty string is a palindrome.
func IsPalindrome(s string) bool {
	i, j := 0, len(s)
	for i < j {
		head, hw := utf8.DecodeRuneInString(s[i:j])
		tail, tw := utf8.DecodeLastRuneInString(s[i:j])
		if head != tail {
			return false
		}
		i += hw
		j -= tw
	}
	return true
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// IsRelevant reports whether a segmentation has at least one word longer
// than a single character. A phrase spelled out letter by letter is not
// relevant, and neither is an empty segmentation.
func IsRelevant(words []string) bool {
	for _, w := range words {
		if utf8.RuneCountInString(w) > 1 {
			return true
		}
	}
	return false
}
