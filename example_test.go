package richdoc_test

import (
	"fmt"

	"github.com/tsawler/richdoc"
	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
)

func Example() {
	doc := richdoc.FromBytes([]byte(`{\rtf1 {\b Release notes.} Everything is faster.\par Thanks!}`))

	fmt.Println(doc.DefaultTitle())
	for _, p := range doc.Paragraphs() {
		fmt.Printf("%q\n", p.PlainText())
	}
	// Output:
	// Release notes.
	// "Release notes. Everything is faster.\n"
	// "Thanks!"
}

func Example_typography() {
	doc := richdoc.New(model.NewString("Hello world", nil))
	blue := model.RGB(0, 0, 255)
	doc.ApplyTypography(model.Font{Family: "Georgia", Size: 14}, &blue)

	attrs := doc.Content().AttributesAt(0)
	f, _ := attrs.Font()
	c, _ := attrs.ForegroundColor()
	fmt.Println(f, c)
	// Output:
	// Georgia 14pt #0000ff
}

func Example_observe() {
	doc := richdoc.Empty()
	sub := doc.Subscribe(func(c richdoc.Change) {
		fmt.Printf("%s: %q\n", c.Kind, c.Document.PlainText())
	})

	doc.SetContent(model.NewString("draft", nil))
	doc.Flush()
	sub.Unsubscribe()
	doc.SetContent(model.NewString("unseen", nil))
	// Output:
	// replace: "draft"
	// flush: ""
}

func Example_html() {
	page := []byte(`<nav><a href="/">Home</a></nav><p>Pasted <b>text</b></p>`)
	doc := richdoc.FromBytes(page, richdoc.WithCodec(htmldoc.Codec{Boilerplate: htmldoc.DropSemantic}))

	fmt.Println(doc.PlainText())
	fmt.Printf("%q\n", richdoc.Joined([]*richdoc.Document{doc, doc}).PlainText())
	// Output:
	// Pasted text
	// "Pasted text\nPasted text"
}
