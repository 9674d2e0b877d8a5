package segment

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Unicode is the default Segmenter.
type Unicode struct{}

// Default is the segmenter used when none is configured.
var Default Segmenter = Unicode{}

// SentenceBoundaries implements Segmenter using UAX #29 sentence rules.
// Trailing whitespace belongs to the sentence it follows.
func (Unicode) SentenceBoundaries(text string) []Range {
	var ranges []Range
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		n := utf8.RuneCountInString(sentence)
		ranges = append(ranges, Range{Start: pos, End: pos + n})
		pos += n
	}
	return ranges
}

// ParagraphBoundaries implements Segmenter. CRLF counts as one separator.
func (Unicode) ParagraphBoundaries(text string) []Range {
	var ranges []Range
	start, pos := 0, 0
	var prev rune
	for _, r := range text {
		pos++
		if r == '\n' && prev == '\r' {
			// Extend the paragraph that the CR already closed.
			ranges[len(ranges)-1].End = pos
			start = pos
			prev = r
			continue
		}
		if IsParagraphSeparator(r) {
			ranges = append(ranges, Range{Start: start, End: pos})
			start = pos
		}
		prev = r
	}
	if start < pos {
		ranges = append(ranges, Range{Start: start, End: pos})
	}
	return ranges
}
