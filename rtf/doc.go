// Package rtf reads and writes styled text in the Rich Text Format.
//
// Only the subset needed to round-trip a [model.StyledText] is interpreted:
//
//   - font table and color table
//   - font family (\f), size (\fs), bold (\b), italic (\i), underline (\ul)
//   - foreground color (\cf)
//   - paragraph breaks (\par), line breaks (\line) and tabs (\tab)
//   - code page text (\ansicpg, \'hh) and Unicode escapes (\u, \uc)
//
// Everything else is skipped: document information, style sheets, pictures,
// headers and footers, and any destination marked ignorable with \*.
//
// RTF has no finer weights or slants, so a round trip normalizes fonts:
//
//   - semi-bold and heavier weights come back as font.WeightBold, lighter
//     ones as font.WeightNormal
//   - oblique comes back as italic
//   - sizes are rounded to the nearest half point
//   - leading and trailing spaces of family names are dropped
//
// Non-ASCII family names are written and read like body text, so any
// Unicode name survives.
//
// # Decoding
//
//	st, err := rtf.Decode(data)
//	if errors.Is(err, rtf.ErrNotRTF) {
//	    // not an RTF document
//	}
//
// Raw 8-bit text is decoded through the document's code page using
// golang.org/x/text/encoding/charmap; Windows-1252 is assumed when the
// document does not name one.
//
// # Encoding
//
//	data, err := rtf.Encode(st)
//
// The writer emits one group per run. Characters outside Windows-1252 are
// written as \u escapes with a "?" fallback.
package rtf
