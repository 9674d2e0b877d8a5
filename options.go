package richdoc

import (
	"io"
	"log/slog"

	"github.com/tsawler/richdoc/rtf"
	"github.com/tsawler/richdoc/segment"
)

// options holds the collaborators of a Document.
type options struct {
	codec     Codec
	segmenter segment.Segmenter
	logger    *slog.Logger
}

// Option configures a Document.
type Option func(*options)

// WithCodec sets the byte format used by FromBytes, ToBytes, Decode and
// Encode. The default is RTF.
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithSegmenter sets the sentence and paragraph segmenter. The default is
// segment.Default.
func WithSegmenter(s segment.Segmenter) Option {
	return func(o *options) {
		if s != nil {
			o.segmenter = s
		}
	}
}

// WithLogger sets the logger that receives debug records for swallowed
// decode and encode failures. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// defaultOptions returns the default document options.
func defaultOptions() options {
	return options{
		codec:     rtf.Codec{},
		segmenter: segment.Default,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
