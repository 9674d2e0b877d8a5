package richdoc

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/tsawler/richdoc/format"
	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/rtf"
)

var (
	// ErrUnsupportedFormat is returned by CodecFor for formats without a codec.
	ErrUnsupportedFormat = errors.New("richdoc: unsupported format")
	// ErrInvalidText is returned by PlainTextCodec for input that is not UTF-8.
	ErrInvalidText = errors.New("richdoc: text is not valid UTF-8")
)

// Codec converts styled text to and from a byte format.
type Codec interface {
	Encode(st *model.StyledText) ([]byte, error)
	Decode(data []byte) (*model.StyledText, error)
}

var (
	_ Codec = rtf.Codec{}
	_ Codec = htmldoc.Codec{}
	_ Codec = PlainTextCodec{}
)

// PlainTextCodec reads and writes UTF-8 text. Encoding drops all
// attributes; decoded text has none.
type PlainTextCodec struct{}

// Encode returns the plain text of st.
func (PlainTextCodec) Encode(st *model.StyledText) ([]byte, error) {
	return []byte(st.String()), nil
}

// Decode interprets data as UTF-8, ignoring a leading byte order mark.
func (PlainTextCodec) Decode(data []byte) (*model.StyledText, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		return nil, ErrInvalidText
	}
	return model.NewString(string(data), nil), nil
}

// CodecFor returns the codec for a format.
func CodecFor(f format.Format) (Codec, error) {
	return codecFor(f, nil)
}

func codecFor(f format.Format, logger *slog.Logger) (Codec, error) {
	switch f {
	case format.RTF:
		return rtf.Codec{}, nil
	case format.HTML:
		return htmldoc.Codec{Logger: logger}, nil
	case format.PlainText:
		return PlainTextCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}
