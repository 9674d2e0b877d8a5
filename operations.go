package richdoc

import (
	"strings"

	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/segment"
)

const (
	// UntitledTitle is the title of a document without visible text.
	UntitledTitle = "Untitled"

	// maxTitleWords is the longest sentence DefaultTitle returns whole.
	maxTitleWords = 20
)

// ApplyTypography sets every run's font to font and, when color is non-nil,
// every run's foreground color to *color. Other attributes are kept and run
// boundaries are unchanged. Observers are notified once.
func (d *Document) ApplyTypography(font model.Font, color *model.Color) {
	d.content.TransformRuns(func(attrs model.Attributes) {
		attrs[model.KeyFont] = font
		if color != nil {
			attrs[model.KeyForegroundColor] = *color
		}
	})
	d.notify(ChangeTypography)
}

// Flush empties the document. Observers are notified once.
func (d *Document) Flush() {
	d.content = model.NewStyledText()
	d.notify(ChangeFlush)
}

// Copy returns an independent document with the same content and options.
// Observers are not copied.
func (d *Document) Copy() *Document {
	return newDocument(d.content.Clone(), d.opts)
}

// Paragraphs splits the content at paragraph separators. Each separator
// stays with the paragraph it ends, so the paragraphs' texts concatenate to
// the original text. An empty document has no paragraphs. The returned
// documents share this document's options.
func (d *Document) Paragraphs() []*Document {
	ranges := d.opts.segmenter.ParagraphBoundaries(d.content.String())
	paragraphs := make([]*Document, 0, len(ranges))
	for _, r := range ranges {
		paragraphs = append(paragraphs, newDocument(d.content.Slice(r.Start, r.End), d.opts))
	}
	return paragraphs
}

// DefaultTitle derives a title from the content: the first sentence of at
// most 20 words, or else the first 20 words. A document without visible
// text is "Untitled".
func (d *Document) DefaultTitle() string {
	text := strings.TrimSpace(d.content.String())
	if text == "" {
		return UntitledTitle
	}

	runes := []rune(text)
	for _, r := range d.opts.segmenter.SentenceBoundaries(text) {
		if r.Start < 0 || r.End > len(runes) || r.Start >= r.End {
			continue
		}
		sentence := strings.TrimSpace(string(runes[r.Start:r.End]))
		if sentence == "" {
			continue
		}
		if len(segment.Words(sentence)) <= maxTitleWords {
			return sentence
		}
	}
	return segment.FirstWords(text, maxTitleWords)
}

// Joined concatenates the parts' contents with one unstyled "\n" between
// consecutive parts. Nil parts count as empty. The result uses default
// options unless opts are given.
func Joined(parts []*Document, opts ...Option) *Document {
	texts := make([]*model.StyledText, len(parts))
	for i, p := range parts {
		if p != nil {
			texts[i] = p.content
		}
	}
	return newDocument(model.Concat(texts, "\n"), newOptions(opts))
}
