package richdoc

import (
	"fmt"

	"github.com/tsawler/richdoc/model"
)

// Document is a mutable rich-text document. It exclusively owns its
// content: values passed in and handed out are copies.
//
// A Document is not safe for concurrent use.
type Document struct {
	content *model.StyledText
	opts    options
	subs    []*Subscription
}

// Empty returns a document with no content.
func Empty(opts ...Option) *Document {
	return newDocument(model.NewStyledText(), newOptions(opts))
}

// New returns a document holding a copy of st.
func New(st *model.StyledText, opts ...Option) *Document {
	return newDocument(st.Clone(), newOptions(opts))
}

func newDocument(st *model.StyledText, o options) *Document {
	return &Document{content: st, opts: o}
}

// FromBytes decodes data with the configured codec. Input that cannot be
// decoded yields an empty document; the failure is logged at debug level
// and otherwise not reported.
func FromBytes(data []byte, opts ...Option) *Document {
	o := newOptions(opts)
	st, err := o.codec.Decode(data)
	if err != nil {
		o.logger.Debug("decoding document failed, using empty content", "bytes", len(data), "error", err)
		st = model.NewStyledText()
	}
	return newDocument(st, o)
}

// Decode is FromBytes with decode failures reported.
func Decode(data []byte, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	st, err := o.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return newDocument(st, o), nil
}

// ToBytes encodes the whole content with the configured codec. An encoding
// failure is logged at debug level and yields an empty, non-nil slice.
func (d *Document) ToBytes() []byte {
	data, err := d.Encode()
	if err != nil {
		d.opts.logger.Debug("encoding document failed, returning no bytes", "error", err)
		return []byte{}
	}
	return data
}

// Encode is ToBytes with encoding failures reported.
func (d *Document) Encode() ([]byte, error) {
	data, err := d.opts.codec.Encode(d.content)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Content returns a copy of the content.
func (d *Document) Content() *model.StyledText {
	return d.content.Clone()
}

// SetContent replaces the content with a copy of st. A nil st empties the
// document. Observers are notified once.
func (d *Document) SetContent(st *model.StyledText) {
	d.content = st.Clone()
	d.notify(ChangeReplace)
}

// PlainText returns the content without attributes.
func (d *Document) PlainText() string {
	return d.content.String()
}

// Len returns the content length in code points.
func (d *Document) Len() int {
	return d.content.Len()
}

// IsEmpty reports whether the content has zero length.
func (d *Document) IsEmpty() bool {
	return d.content.IsEmpty()
}
