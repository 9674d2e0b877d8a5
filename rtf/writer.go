package rtf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/richdoc/model"
)

// ErrUnsupportedValue is returned when a font or color attribute holds a
// value of the wrong type.
var ErrUnsupportedValue = errors.New("rtf: unsupported attribute value")

// Encode writes st as an RTF document.
func Encode(st *model.StyledText) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encoder writes styled text as RTF.
type Encoder struct {
	w io.Writer
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// runFormat is the resolved formatting of a single run.
type runFormat struct {
	font      *model.Font
	color     *model.Color
	underline bool
}

// tables collects the font and color tables of a document.
type tables struct {
	families    []string
	familyIndex map[string]int
	colors      []model.Color
	colorIndex  map[model.Color]int
}

// Encode writes the complete document. Nothing is written when an
// attribute cannot be represented.
func (e *Encoder) Encode(st *model.StyledText) error {
	runs := st.Runs()
	formats := make([]runFormat, len(runs))
	tbl := &tables{
		familyIndex: make(map[string]int),
		colorIndex:  make(map[model.Color]int),
	}

	for i, r := range runs {
		f, err := resolveFormat(r.Attrs)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		formats[i] = f
		if f.font != nil {
			tbl.addFamily(f.font.Family)
		}
		if f.color != nil {
			tbl.addColor(*f.color)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(`{\rtf1\ansi\ansicpg1252\deff0\uc1`)
	tbl.writeFontTable(&buf)
	tbl.writeColorTable(&buf)
	buf.WriteString("\n")

	for i, r := range runs {
		buf.WriteString("{")
		tbl.writeFormat(&buf, formats[i])
		writeText(&buf, r.Text)
		buf.WriteString("}")
	}
	buf.WriteString("}")

	_, err := e.w.Write(buf.Bytes())
	return err
}

func resolveFormat(attrs model.Attributes) (runFormat, error) {
	var f runFormat
	if v, ok := attrs[model.KeyFont]; ok {
		fnt, ok := v.(model.Font)
		if !ok {
			return f, fmt.Errorf("%w: font is %T", ErrUnsupportedValue, v)
		}
		if math.IsNaN(fnt.Size) || math.IsInf(fnt.Size, 0) || fnt.Size < 0 {
			return f, fmt.Errorf("%w: font size %v", ErrUnsupportedValue, fnt.Size)
		}
		f.font = &fnt
	}
	if v, ok := attrs[model.KeyForegroundColor]; ok {
		c, ok := v.(model.Color)
		if !ok {
			return f, fmt.Errorf("%w: color is %T", ErrUnsupportedValue, v)
		}
		f.color = &c
	}
	f.underline = attrs.Underline()
	return f, nil
}

func (t *tables) addFamily(family string) {
	if _, ok := t.familyIndex[family]; ok {
		return
	}
	t.familyIndex[family] = len(t.families)
	t.families = append(t.families, family)
}

// addColor assigns indexes from 1; index 0 is the automatic color.
func (t *tables) addColor(c model.Color) {
	if _, ok := t.colorIndex[c]; ok {
		return
	}
	t.colors = append(t.colors, c)
	t.colorIndex[c] = len(t.colors)
}

func (t *tables) writeFontTable(buf *bytes.Buffer) {
	if len(t.families) == 0 {
		return
	}
	buf.WriteString(`{\fonttbl`)
	for i, family := range t.families {
		fmt.Fprintf(buf, `{\f%d\fnil\fcharset0 `, i)
		writeFontName(buf, family)
		buf.WriteString(";}")
	}
	buf.WriteString("}")
}

func (t *tables) writeColorTable(buf *bytes.Buffer) {
	if len(t.colors) == 0 {
		return
	}
	buf.WriteString(`{\colortbl;`)
	for _, c := range t.colors {
		fmt.Fprintf(buf, `\red%d\green%d\blue%d;`, c.R, c.G, c.B)
	}
	buf.WriteString("}")
}

func (t *tables) writeFormat(buf *bytes.Buffer, f runFormat) {
	if f.font != nil {
		fmt.Fprintf(buf, `\f%d\fs%d`, t.familyIndex[f.font.Family], int(math.Round(f.font.Size*2)))
		if f.font.Bold() {
			buf.WriteString(`\b`)
		}
		if f.font.Italic() {
			buf.WriteString(`\i`)
		}
	}
	if f.underline {
		buf.WriteString(`\ul`)
	}
	if f.color != nil {
		buf.WriteString(`\cf`)
		buf.WriteString(strconv.Itoa(t.colorIndex[*f.color]))
	}
	if buf.Bytes()[buf.Len()-1] != '{' {
		buf.WriteString(" ")
	}
}

// writeFontName escapes a family name. A literal ';' would end the entry.
func writeFontName(buf *bytes.Buffer, name string) {
	for _, r := range name {
		if r == ';' {
			buf.WriteString(`\'3b`)
			continue
		}
		writeRune(buf, r)
	}
}

func writeText(buf *bytes.Buffer, text string) {
	for _, r := range text {
		switch r {
		case '\n':
			buf.WriteString("\\par\n")
		case '\u2028':
			buf.WriteString(`\line `)
		case '\t':
			buf.WriteString(`\tab `)
		default:
			writeRune(buf, r)
		}
	}
}

func writeRune(buf *bytes.Buffer, r rune) {
	switch {
	case r == '\\' || r == '{' || r == '}':
		buf.WriteByte('\\')
		buf.WriteByte(byte(r))
	case r >= 0x20 && r < 0x7f:
		buf.WriteByte(byte(r))
	default:
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			fmt.Fprintf(buf, `\'%02x`, b)
			return
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			writeUnicode(buf, hi)
			writeUnicode(buf, lo)
			return
		}
		writeUnicode(buf, r)
	}
}

// writeUnicode writes \uN with a one-character fallback. N is a signed
// 16-bit value.
func writeUnicode(buf *bytes.Buffer, r rune) {
	n := int(r)
	if n > 0x7FFF {
		n -= 0x10000
	}
	fmt.Fprintf(buf, `\u%d?`, n)
}
