package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/richdoc"
	"github.com/tsawler/richdoc/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// ============================================================================
// Commands
// ============================================================================

func TestTitle(t *testing.T) {
	path := writeFile(t, "doc.txt", "Hi there. This one is the second sentence.")
	code, out, errOut := runCmd("title", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "Hi there.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestText(t *testing.T) {
	path := writeFile(t, "doc.rtf", `{\rtf1 Hello\par World}`)
	code, out, _ := runCmd("text", path)
	if code != 0 || out != "Hello\nWorld\n" {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestParagraphs(t *testing.T) {
	path := writeFile(t, "doc.html", "<p>One</p><p>Two</p>")
	code, out, _ := runCmd("paragraphs", path)
	if code != 0 || out != "1\tOne\n2\tTwo\n" {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestConvert(t *testing.T) {
	in := writeFile(t, "page.html", "<p><b>Bold</b> text</p>")
	out := filepath.Join(filepath.Dir(in), "page.rtf")

	code, _, errOut := runCmd("convert", "-o", out, in)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	doc := richdoc.Must(richdoc.Load(out))
	if doc.PlainText() != "Bold text" {
		t.Errorf("converted text = %q", doc.PlainText())
	}
	if f, _ := doc.Content().AttributesAt(0).Font(); !f.Bold() {
		t.Error("bold was lost in conversion")
	}
}

func TestTypography(t *testing.T) {
	in := writeFile(t, "doc.rtf", `{\rtf1 plain words}`)
	out := filepath.Join(filepath.Dir(in), "styled.rtf")

	code, _, errOut := runCmd("typography", "-family", "Georgia", "-size", "14", "-bold", "-color", "#336699", "-o", out, in)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}

	attrs := richdoc.Must(richdoc.Load(out)).Content().AttributesAt(0)
	f, _ := attrs.Font()
	if f.Family != "Georgia" || f.Size != 14 || !f.Bold() {
		t.Errorf("font = %+v", f)
	}
	if c, _ := attrs.ForegroundColor(); c != model.RGB(0x33, 0x66, 0x99) {
		t.Errorf("color = %v", c)
	}
}

// ============================================================================
// Errors
// ============================================================================

func TestErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.rtf")
	txt := writeFile(t, "doc.txt", "words")

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"no command", nil, 2, "Usage:"},
		{"unknown command", []string{"frobnicate"}, 2, `unknown command "frobnicate"`},
		{"missing file argument", []string{"title"}, 2, "Usage: richdoc title"},
		{"missing file", []string{"title", missing}, 1, "reading document"},
		{"convert without output", []string{"convert", txt}, 1, "-o"},
		{"bad color", []string{"typography", "-color", "nope!", txt}, 1, "invalid color"},
		{"bad size", []string{"typography", "-size", "0", txt}, 1, "invalid font size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCmd(tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d", code, tt.code)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", errOut, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runCmd("-version")
	if code != 0 || !strings.HasPrefix(out, "richdoc dev") {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestVerboseLogging(t *testing.T) {
	path := writeFile(t, "doc.txt", "words")
	_, _, errOut := runCmd("-v", "title", path)
	if !strings.Contains(errOut, "loading document") {
		t.Errorf("stderr = %q, want a debug record", errOut)
	}
}
