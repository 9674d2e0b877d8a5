package segment

import "strings"

// Range is a half-open [Start, End) span of code points.
type Range struct {
	Start int
	End   int
}

// Len returns the number of code points in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Segmenter finds sentence and paragraph boundaries in plain text.
type Segmenter interface {
	// SentenceBoundaries returns consecutive sentence ranges covering text.
	SentenceBoundaries(text string) []Range
	// ParagraphBoundaries returns consecutive paragraph ranges covering text.
	// Each range includes its trailing separator.
	ParagraphBoundaries(text string) []Range
}

// Words returns the maximal runs of non-whitespace in text.
func Words(text string) []string {
	return strings.Fields(text)
}

// FirstWords returns at most n words of text joined by single spaces.
func FirstWords(text string, n int) string {
	words := Words(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// IsParagraphSeparator reports whether r ends a paragraph.
func IsParagraphSeparator(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2029':
		return true
	}
	return false
}
