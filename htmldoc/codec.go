// Package htmldoc converts styled text to and from HTML.
//
// Decoding sanitizes the input first, so pasted or downloaded pages can be
// read safely. Only the formatting the document model carries survives:
// font family, size, weight and style, underline and foreground color.
// Paragraph elements become "\n" separators and <br> becomes U+2028.
//
// Encoding writes one <p> per paragraph and one <span> per styled run.
// Runs of whitespace collapse when read back, as they do in a browser.
package htmldoc

import (
	"io"
	"log/slog"

	"github.com/tsawler/richdoc/model"
)

// Codec is an HTML codec. The zero value decodes everything and discards
// log output.
type Codec struct {
	// Boilerplate selects site chrome to drop before decoding.
	Boilerplate Boilerplate

	// Logger receives debug records for styling that could not be
	// interpreted. Nil discards them.
	Logger *slog.Logger
}

// Decode parses HTML into styled text.
func (c Codec) Decode(data []byte) (*model.StyledText, error) {
	return c.decode(data)
}

// Encode renders styled text as an HTML fragment.
func (c Codec) Encode(st *model.StyledText) ([]byte, error) {
	return encode(st)
}

func (c Codec) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Decode parses HTML with the zero Codec.
func Decode(data []byte) (*model.StyledText, error) {
	return Codec{}.Decode(data)
}

// Encode renders st with the zero Codec.
func Encode(st *model.StyledText) ([]byte, error) {
	return Codec{}.Encode(st)
}
