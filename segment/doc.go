// Package segment splits plain text into sentences, paragraphs and words.
//
// Segmentation is pluggable through the [Segmenter] interface. The default
// implementation, [Unicode], follows the Unicode text segmentation rules
// (UAX #29) for sentences and treats newline, carriage return, CRLF, NEL and
// U+2029 as paragraph separators. It is a compatibility approximation of
// platform locale tables, not a bit-exact match for any one of them.
//
// All ranges are measured in Unicode code points.
package segment
