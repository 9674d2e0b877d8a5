// Package format provides file format detection for the richdoc library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// RTF indicates a Rich Text Format document, the portable format of a
	// rich document.
	RTF
	// HTML indicates an HTML document or fragment.
	HTML
	// PlainText indicates UTF-8 text without formatting.
	PlainText
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case RTF:
		return "RTF"
	case HTML:
		return "HTML"
	case PlainText:
		return "PlainText"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case RTF:
		return ".rtf"
	case HTML:
		return ".html"
	case PlainText:
		return ".txt"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".rtf":
		return RTF
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".txt", ".text":
		return PlainText
	default:
		return Unknown
	}
}

// sniffLen is how much of a stream DetectFromReader inspects.
const sniffLen = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFromMagic checks leading bytes to determine format. Leading
// whitespace and a UTF-8 byte order mark are ignored. Text that is valid
// UTF-8 and contains no NUL bytes is PlainText; anything else is Unknown.
func DetectFromMagic(data []byte) Format {
	head := bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(head) == 0 {
		return Unknown
	}

	if bytes.HasPrefix(head, []byte(`{\rtf`)) {
		return RTF
	}

	if detectHTMLMagic(head) {
		return HTML
	}

	if isText(data) {
		return PlainText
	}
	return Unknown
}

// htmlSignatures are upper-cased prefixes that mark HTML content.
var htmlSignatures = []string{
	"<!DOCTYPE HTML",
	"<HTML",
	"<HEAD",
	"<BODY",
	"<META",
	"<!--STARTFRAGMENT",
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(string(data[:min(len(data), sniffLen)]))
	for _, sig := range htmlSignatures {
		if strings.HasPrefix(upper, sig) {
			return true
		}
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// isText reports whether data is UTF-8 without NUL bytes. A multi-byte
// sequence cut off by the end of data is accepted.
func isText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return !utf8.FullRune(data)
		}
		data = data[size:]
	}
	return true
}

// DetectFromReader reads up to the first 512 bytes of r and inspects them
// with DetectFromMagic.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, sniffLen)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
