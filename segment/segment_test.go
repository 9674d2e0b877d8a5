package segment

import (
	"strings"
	"testing"
)

func substrings(text string, ranges []Range) []string {
	runes := []rune(text)
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = string(runes[r.Start:r.End])
	}
	return out
}

func TestParagraphBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"no separator", "one paragraph", []string{"one paragraph"}},
		{"trailing newline", "a\n", []string{"a\n"}},
		{"two paragraphs", "a\nb", []string{"a\n", "b"}},
		{"blank line", "a\n\nb", []string{"a\n", "\n", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
		{"lone cr", "a\rb", []string{"a\r", "b"}},
		{"paragraph separator", "é\u2029ü", []string{"é\u2029", "ü"}},
		{"next line", "x\u0085y", []string{"x\u0085", "y"}},
		{"only newlines", "\n\n", []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := substrings(tt.text, Unicode{}.ParagraphBoundaries(tt.text))
			if len(got) != len(tt.want) {
				t.Fatalf("ParagraphBoundaries(%q) = %q, want %q", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("paragraph %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if joined := strings.Join(got, ""); joined != tt.text {
				t.Errorf("paragraphs do not partition the text: %q", joined)
			}
		})
	}
}

func TestSentenceBoundaries(t *testing.T) {
	text := "Hi there. This is the second one! And a third?"
	got := substrings(text, Default.SentenceBoundaries(text))
	want := []string{"Hi there. ", "This is the second one! ", "And a third?"}
	if len(got) != len(want) {
		t.Fatalf("SentenceBoundaries() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}

	if r := Default.SentenceBoundaries(""); len(r) != 0 {
		t.Errorf("SentenceBoundaries(\"\") = %v, want none", r)
	}

	runOn := "no punctuation at all in this text"
	if r := Default.SentenceBoundaries(runOn); len(r) != 1 || r[0].Len() != len(runOn) {
		t.Errorf("SentenceBoundaries(run-on) = %v", r)
	}
}

func TestSentenceBoundariesMultibyte(t *testing.T) {
	text := "Grüße aus Köln. Schön!"
	ranges := Default.SentenceBoundaries(text)
	if len(ranges) != 2 {
		t.Fatalf("got %d sentences, want 2", len(ranges))
	}
	if ranges[1].End != len([]rune(text)) {
		t.Errorf("last sentence ends at %d, want %d", ranges[1].End, len([]rune(text)))
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{" two  words\t", 2},
		{"line\nbreak\u00a0nbsp", 3},
	}

	for _, tt := range tests {
		if got := len(Words(tt.text)); got != tt.want {
			t.Errorf("len(Words(%q)) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestFirstWords(t *testing.T) {
	if got := FirstWords("a  b\nc d", 3); got != "a b c" {
		t.Errorf("FirstWords() = %q, want %q", got, "a b c")
	}
	if got := FirstWords("short", 20); got != "short" {
		t.Errorf("FirstWords() = %q, want %q", got, "short")
	}
}
