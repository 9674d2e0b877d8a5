package rtf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"golang.org/x/image/font"
	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/richdoc/model"
)

var (
	// ErrNotRTF is returned when the input does not start with an RTF header.
	ErrNotRTF = errors.New("rtf: not an RTF document")
	// ErrUnbalancedGroups is returned for a closing brace without a matching group.
	ErrUnbalancedGroups = errors.New("rtf: unbalanced groups")
)

// defaultFontSize is the RTF default of \fs24, in points.
const defaultFontSize = 12

// destination says where text inside the current group goes.
type destination int

const (
	destText destination = iota
	destFontTable
	destColorTable
	destSkip
)

// skippedDestinations are destinations whose content never reaches the text.
var skippedDestinations = map[string]bool{
	"info":              true,
	"stylesheet":        true,
	"pict":              true,
	"object":            true,
	"header":            true,
	"headerl":           true,
	"headerr":           true,
	"headerf":           true,
	"footer":            true,
	"footerl":           true,
	"footerr":           true,
	"footerf":           true,
	"footnote":          true,
	"fldinst":           true,
	"listtable":         true,
	"listoverridetable": true,
	"revtbl":            true,
	"rsidtbl":           true,
	"xmlnstbl":          true,
	"latentstyles":      true,
	"themedata":         true,
	"datastore":         true,
	"filetbl":           true,
	"generator":         true,
}

// charState holds the character formatting in effect for a group.
type charState struct {
	dest      destination
	font      int // index into the font table, -1 when unset
	size      float64
	bold      bool
	italic    bool
	underline bool
	color     int // index into the color table, 0 is automatic
	uc        int // fallback characters following \u
}

func defaultState() charState {
	return charState{font: -1, size: defaultFontSize, uc: 1}
}

// fontEntry is one font table record.
type fontEntry struct {
	family string
}

// decoder turns a token stream into styled text.
type decoder struct {
	lex     *lexer
	charset *charmap.Charmap

	fonts      map[int]fontEntry
	fontIndex  int
	fontName   []rune
	colors     []*model.Color
	colorParts [3]int
	colorSet   bool

	stack []charState
	cur   charState

	out          *model.StyledText
	pending      strings.Builder
	pendingAttrs model.Attributes
	skip         int  // fallback characters still to drop after \u
	highSurr     rune // pending high surrogate from a \u escape
	nextIgnored  bool // \* seen, the next control word starts an ignorable destination
	groupStarted bool // the last token opened a group
	depth        int  // nesting depth, 0 after the document group closes
	done         bool // document group closed
}

// Decode parses an RTF document into styled text.
func Decode(data []byte) (*model.StyledText, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}

// Decoder reads styled text from an RTF stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the whole stream and returns its styled text.
func (d *Decoder) Decode() (*model.StyledText, error) {
	dec := &decoder{
		lex:     newLexer(d.r),
		charset: charmap.Windows1252,
		fonts:   make(map[int]fontEntry),
		cur:     defaultState(),
		out:     model.NewStyledText(),
	}
	if err := dec.readHeader(); err != nil {
		return nil, err
	}
	if err := dec.run(); err != nil {
		return nil, err
	}
	dec.flush()
	return dec.out, nil
}

// readHeader checks for the opening "{\rtf" sequence, allowing leading
// whitespace and a UTF-8 byte order mark.
func (d *decoder) readHeader() error {
	for {
		b, err := d.lex.peek()
		if err != nil {
			return ErrNotRTF
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			d.lex.readByte()
			continue
		}
		if b == 0xEF {
			bom, err := d.lex.reader.Peek(3)
			if err == nil && bom[1] == 0xBB && bom[2] == 0xBF {
				d.lex.skipBytes(3)
				continue
			}
		}
		break
	}

	tok, err := d.lex.next()
	if err != nil || tok.typ != tokenGroupStart {
		return ErrNotRTF
	}
	tok, err = d.lex.next()
	if err != nil || tok.typ != tokenControlWord || tok.word != "rtf" {
		return ErrNotRTF
	}
	d.depth = 1
	d.stack = append(d.stack, d.cur)
	return nil
}

// run processes tokens until the document group closes.
func (d *decoder) run() error {
	for !d.done {
		tok, err := d.lex.next()
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}

		groupStarted := d.groupStarted
		d.groupStarted = false

		switch tok.typ {
		case tokenEOF:
			return fmt.Errorf("document ends inside %d open groups: %w", d.depth, io.ErrUnexpectedEOF)

		case tokenGroupStart:
			d.flush()
			d.stack = append(d.stack, d.cur)
			d.depth++
			d.skip = 0
			d.groupStarted = true

		case tokenGroupEnd:
			if err := d.endGroup(); err != nil {
				return err
			}

		case tokenControlSymbol:
			d.controlSymbol(tok.symbol)

		case tokenHex:
			d.hexByte(tok.symbol)

		case tokenControlWord:
			if err := d.controlWord(tok, groupStarted); err != nil {
				return err
			}

		case tokenText:
			d.text(tok.text)
		}
	}
	return nil
}

func (d *decoder) endGroup() error {
	if d.depth == 0 {
		return ErrUnbalancedGroups
	}
	d.flush()
	switch d.cur.dest {
	case destFontTable:
		d.endFontEntry()
	case destColorTable:
		d.endColorEntry(false)
	}
	d.cur = d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	d.depth--
	d.skip = 0
	d.nextIgnored = false
	if d.depth == 0 {
		d.done = true
	}
	return nil
}

func (d *decoder) controlSymbol(sym byte) {
	if sym == '*' {
		d.nextIgnored = true
		return
	}
	if d.consumeFallback() {
		return
	}
	switch sym {
	case '\\', '{', '}':
		d.emitByteLiteral(sym)
	case '~':
		d.emitRune('\u00a0')
	case '_':
		d.emitRune('\u2011')
	case '-':
		// Optional hyphen: invisible unless the line breaks there.
	case '|', ':':
		// Formula and index subentry markers carry no text.
	}
}

func (d *decoder) controlWord(tok token, groupStarted bool) error {
	if d.nextIgnored {
		d.nextIgnored = false
		if tok.word != "fldrslt" {
			d.flush()
			d.cur.dest = destSkip
			return nil
		}
	}

	if tok.word == "bin" && tok.hasParam && tok.param > 0 {
		return d.lex.skipBytes(tok.param)
	}

	if d.cur.dest == destSkip {
		return nil
	}

	if groupStarted && skippedDestinations[tok.word] {
		d.flush()
		d.cur.dest = destSkip
		return nil
	}

	switch d.cur.dest {
	case destFontTable:
		d.fontTableWord(tok)
		return nil
	case destColorTable:
		d.colorTableWord(tok)
		return nil
	}

	if tok.word != "u" && d.consumeFallback() {
		return nil
	}

	switch tok.word {
	case "fonttbl":
		d.flush()
		d.cur.dest = destFontTable
		d.fontIndex = -1
		d.fontName = d.fontName[:0]
	case "colortbl":
		d.flush()
		d.cur.dest = destColorTable
		d.colorSet = false
		d.colorParts = [3]int{}

	case "ansi":
		d.charset = charmap.Windows1252
	case "mac":
		d.charset = charmap.Macintosh
	case "pc":
		d.charset = charmap.CodePage437
	case "pca":
		d.charset = charmap.CodePage850
	case "ansicpg":
		if cm := codePage(tok.param); cm != nil {
			d.charset = cm
		}

	case "plain":
		d.setState(func(s *charState) {
			s.font = -1
			s.size = defaultFontSize
			s.bold = false
			s.italic = false
			s.underline = false
			s.color = 0
		})
	case "f":
		d.setState(func(s *charState) { s.font = tok.param })
	case "fs":
		size := defaultFontSize * 2
		if tok.hasParam {
			size = tok.param
		}
		d.setState(func(s *charState) { s.size = float64(size) / 2 })
	case "b":
		d.setState(func(s *charState) { s.bold = toggle(tok) })
	case "i":
		d.setState(func(s *charState) { s.italic = toggle(tok) })
	case "ul":
		d.setState(func(s *charState) { s.underline = toggle(tok) })
	case "ulnone":
		d.setState(func(s *charState) { s.underline = false })
	case "cf":
		d.setState(func(s *charState) { s.color = tok.param })
	case "uc":
		if tok.param >= 0 {
			d.cur.uc = tok.param
		}

	case "par", "sect", "page":
		d.emitRune('\n')
	case "line":
		d.emitRune('\u2028')
	case "tab":
		d.emitRune('\t')
	case "emdash":
		d.emitRune('\u2014')
	case "endash":
		d.emitRune('\u2013')
	case "bullet":
		d.emitRune('\u2022')
	case "lquote":
		d.emitRune('\u2018')
	case "rquote":
		d.emitRune('\u2019')
	case "ldblquote":
		d.emitRune('\u201c')
	case "rdblquote":
		d.emitRune('\u201d')
	case "u":
		d.unicode(tok.param)
	}
	return nil
}

// toggle interprets \b, \b1 and \b0 style switches.
func toggle(tok token) bool {
	return !tok.hasParam || tok.param != 0
}

func (d *decoder) setState(fn func(*charState)) {
	next := d.cur
	fn(&next)
	if next != d.cur {
		d.flush()
		d.cur = next
	}
}

func (d *decoder) fontTableWord(tok token) {
	switch tok.word {
	case "f":
		d.endFontEntry()
		d.fontIndex = tok.param
		d.fontName = d.fontName[:0]
	case "uc":
		d.cur.uc = max(tok.param, 0)
	case "u":
		if r, ok := d.unicodeRune(tok.param); ok {
			d.appendFontName(r)
		}
	}
}

func (d *decoder) appendFontName(r rune) {
	if d.fontIndex >= 0 {
		d.fontName = append(d.fontName, r)
	}
}

func (d *decoder) endFontEntry() {
	if d.fontIndex < 0 {
		return
	}
	if _, exists := d.fonts[d.fontIndex]; !exists {
		d.fonts[d.fontIndex] = fontEntry{family: strings.TrimSpace(string(d.fontName))}
	}
	d.fontIndex = -1
	d.fontName = d.fontName[:0]
}

func (d *decoder) fontTableText(text []byte) {
	for _, b := range text {
		if d.consumeFallback() {
			continue
		}
		if b == ';' {
			d.endFontEntry()
			continue
		}
		d.appendFontName(d.charset.DecodeByte(b))
	}
}

func (d *decoder) colorTableWord(tok token) {
	switch tok.word {
	case "red":
		d.colorParts[0] = tok.param
		d.colorSet = true
	case "green":
		d.colorParts[1] = tok.param
		d.colorSet = true
	case "blue":
		d.colorParts[2] = tok.param
		d.colorSet = true
	}
}

// endColorEntry closes one color table record. A record with no components
// is the automatic color.
func (d *decoder) endColorEntry(terminated bool) {
	if !terminated && !d.colorSet {
		return
	}
	if d.colorSet {
		c := model.RGB(clampByte(d.colorParts[0]), clampByte(d.colorParts[1]), clampByte(d.colorParts[2]))
		d.colors = append(d.colors, &c)
	} else {
		d.colors = append(d.colors, nil)
	}
	d.colorSet = false
	d.colorParts = [3]int{}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (d *decoder) text(raw []byte) {
	switch d.cur.dest {
	case destSkip:
		return
	case destFontTable:
		d.fontTableText(raw)
		return
	case destColorTable:
		for _, b := range raw {
			if b == ';' {
				d.endColorEntry(true)
			}
		}
		return
	}

	for len(raw) > 0 && d.consumeFallback() {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return
	}
	for _, b := range raw {
		d.emitRune(d.charset.DecodeByte(b))
	}
}

func (d *decoder) hexByte(b byte) {
	switch d.cur.dest {
	case destSkip, destColorTable:
		return
	case destFontTable:
		if !d.consumeFallback() {
			d.appendFontName(d.charset.DecodeByte(b))
		}
		return
	}
	if d.consumeFallback() {
		return
	}
	d.emitRune(d.charset.DecodeByte(b))
}

// emitByteLiteral writes an escaped ASCII character.
func (d *decoder) emitByteLiteral(b byte) {
	switch d.cur.dest {
	case destFontTable:
		d.appendFontName(rune(b))
	case destText:
		d.emitRune(rune(b))
	}
}

// unicode handles \uN in text.
func (d *decoder) unicode(n int) {
	if r, ok := d.unicodeRune(n); ok {
		d.emitRune(r)
	}
}

// unicodeRune decodes the parameter of \uN and arms the fallback skip. A
// high surrogate is held until its pair arrives, so ok is false for it.
func (d *decoder) unicodeRune(n int) (r rune, ok bool) {
	if n < 0 {
		n += 0x10000
	}
	r = rune(n)
	d.skip = d.cur.uc

	switch {
	case utf16.IsSurrogate(r) && r < 0xDC00:
		d.highSurr = r
		return 0, false
	case utf16.IsSurrogate(r):
		if d.highSurr != 0 {
			r = utf16.DecodeRune(d.highSurr, r)
			d.highSurr = 0
		}
	}
	return r, true
}

// consumeFallback drops one fallback character after a \u escape.
func (d *decoder) consumeFallback() bool {
	if d.skip > 0 {
		d.skip--
		return true
	}
	return false
}

func (d *decoder) emitRune(r rune) {
	if d.cur.dest != destText {
		return
	}
	if d.pending.Len() == 0 {
		d.pendingAttrs = d.attributes()
	}
	d.pending.WriteRune(r)
}

// flush moves pending text into the output with the attributes captured
// when it started.
func (d *decoder) flush() {
	if d.pending.Len() == 0 {
		return
	}
	d.out.Append(d.pending.String(), d.pendingAttrs)
	d.pending.Reset()
	d.pendingAttrs = nil
}

// attributes converts the current character state to run attributes.
func (d *decoder) attributes() model.Attributes {
	attrs := model.Attributes{}
	if d.cur.font >= 0 {
		f := model.Font{
			Family: d.fonts[d.cur.font].family,
			Size:   d.cur.size,
			Weight: font.WeightNormal,
			Style:  font.StyleNormal,
		}
		if d.cur.bold {
			f.Weight = font.WeightBold
		}
		if d.cur.italic {
			f.Style = font.StyleItalic
		}
		attrs[model.KeyFont] = f
	}
	if d.cur.color > 0 && d.cur.color < len(d.colors) && d.colors[d.cur.color] != nil {
		attrs[model.KeyForegroundColor] = *d.colors[d.cur.color]
	}
	if d.cur.underline {
		attrs[model.KeyUnderline] = true
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// codePage maps an \ansicpg value to a character map.
func codePage(cp int) *charmap.Charmap {
	switch cp {
	case 437:
		return charmap.CodePage437
	case 850:
		return charmap.CodePage850
	case 852:
		return charmap.CodePage852
	case 866:
		return charmap.CodePage866
	case 874:
		return charmap.Windows874
	case 1250:
		return charmap.Windows1250
	case 1251:
		return charmap.Windows1251
	case 1252:
		return charmap.Windows1252
	case 1253:
		return charmap.Windows1253
	case 1254:
		return charmap.Windows1254
	case 1255:
		return charmap.Windows1255
	case 1256:
		return charmap.Windows1256
	case 1257:
		return charmap.Windows1257
	case 1258:
		return charmap.Windows1258
	case 10000:
		return charmap.Macintosh
	case 10007:
		return charmap.MacintoshCyrillic
	case 20866:
		return charmap.KOI8R
	case 28591:
		return charmap.ISO8859_1
	case 28605:
		return charmap.ISO8859_15
	}
	return nil
}
