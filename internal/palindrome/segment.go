package palindrome

import "strings"

// PrefixIndex lists the words of a dictionary that are prefixes of a string,
// shortest first.
type PrefixIndex interface {
	Prefixes(s string) []string
}

// Segmenter splits strings into dictionary words.
type Segmenter struct {
	index PrefixIndex
}

// NewSegmenter returns a segmenter backed by index. The index must not
// change while the segmenter is in use.
func NewSegmenter(index PrefixIndex) *Segmenter {
	return &Segmenter{index: index}
}

// Segment returns s as a space-joined sequence of dictionary words, or false
// if no such sequence exists.
func (sg *Segmenter) Segment(s string) (string, bool) {
	words, ok := sg.SegmentWords(s)
	if !ok {
		return "", false
	}
	return strings.Join(words, " "), true
}

// SegmentWords is Segment without the final join.
//
// The longest dictionary prefix is tried first; when the remainder cannot be
// segmented, shorter prefixes are tried in decreasing length. The first full
// segmentation found wins, so results favour fewer, longer words.
func (sg *Segmenter) SegmentWords(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	st := &segmentState{text: s, index: sg.index}
	return st.from(0)
}

type segmentState struct {
	text  string
	index PrefixIndex

	// dead holds offsets whose suffix is known to have no segmentation.
	dead map[int]struct{}
}

func (st *segmentState) from(offset int) ([]string, bool) {
	rest := st.text[offset:]
	prefixes := st.index.Prefixes(rest)

	for i := len(prefixes) - 1; i >= 0; i-- {
		word := prefixes[i]
		if len(word) == len(rest) {
			return []string{word}, true
		}

		next := offset + len(word)
		if _, known := st.dead[next]; known {
			continue
		}
		if tail, ok := st.from(next); ok {
			return append([]string{word}, tail...), true
		}
		if st.dead == nil {
			st.dead = make(map[int]struct{})
		}
		st.dead[next] = struct{}{}
	}
	return nil, false
}
