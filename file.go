package richdoc

import (
	"fmt"
	"os"

	"github.com/tsawler/richdoc/format"
)

// Load reads a document from a file. The codec is chosen by extension,
// then by content; when neither identifies a format the configured codec is
// used. Decoding follows the FromBytes policy: undecodable content yields
// an empty document. Only I/O errors are returned.
//
// The returned document keeps the chosen codec, so ToBytes and Save write
// the format that was read.
func Load(filename string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	f := format.Detect(filename)
	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}

	o := newOptions(opts)
	if c, err := codecFor(f, o.logger); err == nil {
		opts = append(opts[:len(opts):len(opts)], WithCodec(c))
	}
	o.logger.Debug("loading document", "file", filename, "format", f)
	return FromBytes(data, opts...), nil
}

// Save writes the document to a file in the format its extension names,
// or with the configured codec when the extension is not recognized.
// Unlike ToBytes, encoding failures are returned.
func (d *Document) Save(filename string) error {
	codec := d.opts.codec
	if c, err := codecFor(format.Detect(filename), d.opts.logger); err == nil {
		codec = c
	}

	data, err := codec.Encode(d.content)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
