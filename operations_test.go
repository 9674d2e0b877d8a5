package richdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font"

	"github.com/tsawler/richdoc/format"
	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/rtf"
	"github.com/tsawler/richdoc/segment"
)

// ============================================================================
// Typography
// ============================================================================

func TestApplyTypography(t *testing.T) {
	doc := New(styledSample())
	var rec recorder
	doc.Subscribe(rec.observe)

	courier := model.Font{Family: "Courier", Size: 10}
	green := model.RGB(0, 128, 0)
	doc.ApplyTypography(courier, &green)

	if len(rec.changes) != 1 || rec.changes[0].Kind != ChangeTypography {
		t.Fatalf("changes = %+v, want one typography change", rec.changes)
	}

	content := doc.Content()
	if content.String() != styledSample().String() {
		t.Errorf("text changed to %q", content.String())
	}
	if content.RunCount() != styledSample().RunCount() {
		t.Errorf("run count = %d, want %d", content.RunCount(), styledSample().RunCount())
	}
	content.EnumerateRuns(func(start, end int, attrs model.Attributes) bool {
		if f, _ := attrs.Font(); f != courier {
			t.Errorf("run [%d,%d) font = %+v", start, end, f)
		}
		if c, _ := attrs.ForegroundColor(); c != green {
			t.Errorf("run [%d,%d) color = %v", start, end, c)
		}
		return true
	})
	if content.AttributesAt(content.Len() - 1)["link"] != "https://example.com" {
		t.Error("host attribute was not preserved")
	}
}

func TestApplyTypographyWithoutColor(t *testing.T) {
	doc := New(styledSample())
	doc.ApplyTypography(helvetica, nil)

	content := doc.Content()
	if c, ok := content.AttributesAt(6).ForegroundColor(); !ok || c != model.RGB(255, 0, 0) {
		t.Errorf("color = %v, %v; want the original red", c, ok)
	}
	if _, ok := content.AttributesAt(0).ForegroundColor(); ok {
		t.Error("color added to a run that had none")
	}
}

func TestApplyTypographyIdempotent(t *testing.T) {
	blue := model.RGB(0, 0, 255)
	f := model.Font{Family: "Georgia", Size: 14, Style: font.StyleItalic}

	once := New(styledSample())
	once.ApplyTypography(f, &blue)
	twice := New(styledSample())
	twice.ApplyTypography(f, &blue)
	twice.ApplyTypography(f, &blue)

	if !once.Content().Equal(twice.Content()) {
		t.Error("applying typography twice differs from applying it once")
	}
}

func TestApplyTypographyEmpty(t *testing.T) {
	doc := Empty()
	var rec recorder
	doc.Subscribe(rec.observe)
	doc.ApplyTypography(helvetica, nil)
	if !doc.IsEmpty() || len(rec.changes) != 1 {
		t.Errorf("empty=%v notifications=%d", doc.IsEmpty(), len(rec.changes))
	}
}

// ============================================================================
// Paragraphs
// ============================================================================

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "no separators here", []string{"no separators here"}},
		{"two", "one\ntwo", []string{"one\n", "two"}},
		{"trailing separator", "one\ntwo\n", []string{"one\n", "two\n"}},
		{"blank line", "a\n\nb", []string{"a\n", "\n", "b"}},
		{"paragraph separator", "a\u2029b", []string{"a\u2029", "b"}},
		{"crlf", "a\r\nb", []string{"a\r\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := New(model.NewString(tt.text, nil)).Paragraphs()
			if len(paragraphs) != len(tt.want) {
				t.Fatalf("got %d paragraphs, want %d", len(paragraphs), len(tt.want))
			}
			var joined strings.Builder
			for i, p := range paragraphs {
				if p.PlainText() != tt.want[i] {
					t.Errorf("paragraph %d = %q, want %q", i, p.PlainText(), tt.want[i])
				}
				joined.WriteString(p.PlainText())
			}
			if joined.String() != tt.text {
				t.Errorf("paragraphs concatenate to %q, want %q", joined.String(), tt.text)
			}
		})
	}
}

func TestParagraphsKeepAttributes(t *testing.T) {
	doc := New(styledSample())
	paragraphs := doc.Paragraphs()
	if len(paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paragraphs))
	}

	first := paragraphs[0].Content()
	if first.String() != "Hello world\n" {
		t.Errorf("first paragraph = %q", first.String())
	}
	if c, _ := first.AttributesAt(6).ForegroundColor(); c != model.RGB(255, 0, 0) {
		t.Errorf("color at 6 = %v", c)
	}

	paragraphs[0].Flush()
	if doc.PlainText() != styledSample().String() {
		t.Error("mutating a paragraph changed its parent")
	}
}

// splitter is a segmenter that treats every '|' as a paragraph end and has
// no sentences.
type splitter struct{}

func (splitter) SentenceBoundaries(string) []segment.Range { return nil }

func (splitter) ParagraphBoundaries(text string) []segment.Range {
	var out []segment.Range
	start, pos := 0, 0
	for _, r := range text {
		pos++
		if r == '|' {
			out = append(out, segment.Range{Start: start, End: pos})
			start = pos
		}
	}
	if start < pos {
		out = append(out, segment.Range{Start: start, End: pos})
	}
	return out
}

func TestParagraphsUseConfiguredSegmenter(t *testing.T) {
	doc := New(model.NewString("a|b|c", nil), WithSegmenter(splitter{}))
	paragraphs := doc.Paragraphs()
	if len(paragraphs) != 3 || paragraphs[1].PlainText() != "b|" {
		t.Fatalf("paragraphs = %d", len(paragraphs))
	}
	if got := paragraphs[0].DefaultTitle(); got != "a|" {
		t.Errorf("child documents should inherit the segmenter, title = %q", got)
	}
}

// ============================================================================
// Default Title
// ============================================================================

func TestDefaultTitle(t *testing.T) {
	runOn := "one two three four five six seven eight nine ten eleven twelve " +
		"thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty twentyone twentytwo"
	long := "This sentence has far more than twenty words because it keeps going on and on " +
		"without any sign of stopping for quite a while now. Short one here."

	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", "Untitled"},
		{"whitespace only", " \n\t\n ", "Untitled"},
		{
			"short first sentence",
			"Hi there. This is a very long sentence that definitely exceeds twenty words in total count for testing purposes today.",
			"Hi there.",
		},
		{
			"run-on sentence",
			runOn,
			"one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty",
		},
		{"later short sentence wins", long, "Short one here."},
		{"surrounding whitespace", "\n\n  Title line.  \n", "Title line."},
		{"single word", "Notes", "Notes"},
		{"question", "Where are we? Nowhere.", "Where are we?"},
		{"exactly twenty words", strings.Repeat("w ", 19) + "w.", strings.Repeat("w ", 19) + "w."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(model.NewString(tt.text, nil)).DefaultTitle()
			if got != tt.want {
				t.Errorf("DefaultTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultTitleWithoutSentences(t *testing.T) {
	doc := New(model.NewString(strings.Repeat("word ", 30), nil), WithSegmenter(splitter{}))
	if got := doc.DefaultTitle(); got != strings.TrimSpace(strings.Repeat("word ", 20)) {
		t.Errorf("DefaultTitle() = %q", got)
	}
}

// ============================================================================
// Join, Copy, Flush
// ============================================================================

func TestJoined(t *testing.T) {
	x := New(model.NewString("X", model.Attributes{model.KeyFont: helvetica}))
	y := New(model.NewString("Y", model.Attributes{model.KeyUnderline: true}))

	joined := Joined([]*Document{x, y})
	if joined.PlainText() != "X\nY" {
		t.Errorf("Joined() = %q, want %q", joined.PlainText(), "X\nY")
	}
	content := joined.Content()
	if content.AttributesAt(1) != nil {
		t.Errorf("separator attributes = %v, want none", content.AttributesAt(1))
	}
	if !content.AttributesAt(2).Underline() {
		t.Error("part attributes were not preserved")
	}

	if !Joined(nil).IsEmpty() {
		t.Error("Joined(nil) should be empty")
	}
	if got := Joined([]*Document{x}); !got.Content().Equal(x.Content()) {
		t.Errorf("Joined(one) = %q", got.PlainText())
	}
	if got := Joined([]*Document{x, nil, y}).PlainText(); got != "X\n\nY" {
		t.Errorf("Joined with nil part = %q", got)
	}
}

func TestJoinedIsIndependent(t *testing.T) {
	x := New(model.NewString("X", nil))
	joined := Joined([]*Document{x})
	x.ApplyTypography(helvetica, nil)
	if joined.Content().AttributesAt(0) != nil {
		t.Error("Joined() shares content with its parts")
	}
}

func TestCopyIndependence(t *testing.T) {
	original := New(styledSample())
	var rec recorder
	original.Subscribe(rec.observe)

	copied := original.Copy()
	if !copied.Content().Equal(original.Content()) {
		t.Fatal("Copy() content differs")
	}

	copied.ApplyTypography(model.Font{Family: "Courier", Size: 8}, nil)
	copied.SetContent(model.NewString("changed", nil))
	if !original.Content().Equal(styledSample()) {
		t.Error("mutating the copy changed the original")
	}
	if len(rec.changes) != 0 {
		t.Error("observers of the original were notified for the copy")
	}

	original.Flush()
	if copied.PlainText() != "changed" {
		t.Error("mutating the original changed the copy")
	}
}

func TestFlush(t *testing.T) {
	doc := New(styledSample())
	var rec recorder
	doc.Subscribe(rec.observe)

	doc.Flush()
	if !doc.IsEmpty() {
		t.Errorf("Flush() left %q", doc.PlainText())
	}
	if len(rec.changes) != 1 || rec.changes[0].Kind != ChangeFlush {
		t.Errorf("changes = %+v", rec.changes)
	}
}

// ============================================================================
// Codecs and Files
// ============================================================================

func TestCodecFor(t *testing.T) {
	tests := []struct {
		format format.Format
		want   Codec
	}{
		{format.RTF, rtf.Codec{}},
		{format.HTML, htmldoc.Codec{}},
		{format.PlainText, PlainTextCodec{}},
	}
	for _, tt := range tests {
		got, err := CodecFor(tt.format)
		if err != nil {
			t.Errorf("CodecFor(%v) failed: %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CodecFor(%v) = %T, want %T", tt.format, got, tt.want)
		}
	}

	if _, err := CodecFor(format.Unknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CodecFor(Unknown) error = %v", err)
	}
}

func TestPlainTextCodec(t *testing.T) {
	var c PlainTextCodec
	st, err := c.Decode([]byte("\xef\xbb\xbfhello"))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if st.String() != "hello" {
		t.Errorf("Decode() = %q", st.String())
	}
	if _, err := c.Decode([]byte{0xff, 0xfe}); !errors.Is(err, ErrInvalidText) {
		t.Errorf("Decode(invalid) error = %v", err)
	}
	data, _ := c.Encode(styledSample())
	if string(data) != styledSample().String() {
		t.Errorf("Encode() = %q", data)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	doc := New(styledSample())

	for _, name := range []string{"doc.rtf", "doc.html", "doc.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := doc.Save(path); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if loaded.PlainText() != doc.PlainText() {
				t.Errorf("loaded text = %q, want %q", loaded.PlainText(), doc.PlainText())
			}
		})
	}
}

func TestLoadKeepsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := Must(Load(path))
	if got := string(doc.ToBytes()); got != "plain" {
		t.Errorf("ToBytes() = %q, want the plain text format", got)
	}
}

func TestLoadDetectsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipboard")
	if err := os.WriteFile(path, []byte(`{\rtf1 sniffed}`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := Must(Load(path))
	if doc.PlainText() != "sniffed" {
		t.Errorf("PlainText() = %q", doc.PlainText())
	}
}

func TestLoadFallbackAndErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.rtf")
	if err := os.WriteFile(path, []byte("{\\rtf1 {"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of undecodable content should not fail: %v", err)
	}
	if !doc.IsEmpty() {
		t.Errorf("PlainText() = %q, want empty", doc.PlainText())
	}

	if _, err := Load(filepath.Join(dir, "missing.rtf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(Decode([]byte("garbage")))
}
