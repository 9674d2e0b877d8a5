package htmldoc

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/image/font"
	"golang.org/x/net/html"

	"github.com/tsawler/richdoc/model"
)

// defaultFontSize is used when bold or italic markup appears without an
// explicit size.
const defaultFontSize = 12

// style is the formatting inherited down the element tree.
type style struct {
	family    string
	size      float64
	weight    font.Weight
	slant     font.Style
	hasFont   bool
	underline bool
	color     *model.Color
}

func (s style) attributes() model.Attributes {
	attrs := model.Attributes{}
	if s.hasFont {
		size := s.size
		if size == 0 {
			size = defaultFontSize
		}
		attrs[model.KeyFont] = model.Font{Family: s.family, Size: size, Weight: s.weight, Style: s.slant}
	}
	if s.color != nil {
		attrs[model.KeyForegroundColor] = *s.color
	}
	if s.underline {
		attrs[model.KeyUnderline] = true
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

// walker collects runs while visiting the sanitized tree.
type walker struct {
	logger *slog.Logger
	runs   []model.Run

	lineStart    bool // only collapsible whitespace since the last line break
	space        bool // collapsed whitespace waiting for the next visible character
	spaceAttrs   model.Attributes
	blockClosed  bool // the last thing emitted was a block end
	preformatted int
}

func (c Codec) decode(data []byte) (*model.StyledText, error) {
	if c.Boilerplate != KeepBoilerplate {
		pruned, err := pruneBoilerplate(data, c.Boilerplate)
		if err != nil {
			return nil, err
		}
		data = pruned
	}

	doc, err := html.Parse(bytes.NewReader(policy.SanitizeBytes(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &walker{logger: c.logger(), lineStart: true}
	w.walk(doc, style{})
	return w.result(), nil
}

func (w *walker) walk(n *html.Node, st style) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data, st)
		return
	case html.ElementNode:
	default:
		w.children(n, st)
		return
	}

	if skipElement(n.Data) {
		return
	}
	if n.Data == "br" {
		w.lineBreak(st)
		return
	}

	if (n.Data == "td" || n.Data == "th") && previousCell(n) {
		w.emit("\t", nil)
	}

	st = w.applyElement(n, st)
	block := isBlock(n.Data)
	if block {
		w.openBlock()
	}
	if n.Data == "pre" {
		w.preformatted++
	}
	w.children(n, st)
	if n.Data == "pre" {
		w.preformatted--
	}
	if block {
		w.closeBlock()
	}
}

func (w *walker) children(n *html.Node, st style) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, st)
	}
}

// applyElement derives the style of an element's content.
func (w *walker) applyElement(n *html.Node, st style) style {
	switch n.Data {
	case "b", "strong", "h1", "h2", "h3", "h4", "h5", "h6", "th":
		st.weight = font.WeightBold
		st.hasFont = true
	case "i", "em", "cite", "dfn", "var":
		st.slant = font.StyleItalic
		st.hasFont = true
	case "u", "ins":
		st.underline = true
	case "font":
		if face := getAttr(n, "face"); face != "" {
			st.family = firstFamily(face)
			st.hasFont = true
		}
		if raw := getAttr(n, "color"); raw != "" {
			st = w.applyColor(st, raw)
		}
	}

	if css := getAttr(n, "style"); css != "" {
		st = w.applyStyle(st, css)
	}
	return st
}

func (w *walker) applyStyle(st style, css string) style {
	// The parser drops the value of a final declaration that has no
	// terminating semicolon.
	css = strings.TrimRight(strings.TrimSpace(css), "; ")
	if css == "" {
		return st
	}
	decls, err := parser.ParseDeclarations(css + ";")
	if err != nil {
		w.logger.Debug("ignoring unparseable style", "style", css, "error", err)
		return st
	}

	for _, d := range decls {
		value := strings.TrimSpace(d.Value)
		if value == "" {
			continue
		}
		switch strings.ToLower(d.Property) {
		case "color":
			st = w.applyColor(st, value)
		case "font-family":
			st.family = firstFamily(value)
			st.hasFont = true
		case "font-size":
			size, ok := parseFontSize(value, st.size)
			if !ok {
				w.logger.Debug("ignoring font size", "value", value)
				continue
			}
			st.size = size
			st.hasFont = true
		case "font-weight":
			weight, ok := parseFontWeight(value, st.weight)
			if !ok {
				w.logger.Debug("ignoring font weight", "value", value)
				continue
			}
			st.weight = weight
			st.hasFont = true
		case "font-style":
			switch strings.ToLower(value) {
			case "italic":
				st.slant = font.StyleItalic
			case "oblique":
				st.slant = font.StyleOblique
			default:
				st.slant = font.StyleNormal
			}
			st.hasFont = true
		case "text-decoration", "text-decoration-line":
			st.underline = strings.Contains(strings.ToLower(value), "underline")
		}
	}
	return st
}

func (w *walker) applyColor(st style, raw string) style {
	if strings.EqualFold(raw, "inherit") {
		return st
	}
	c, err := model.ParseColor(raw)
	if err != nil {
		w.logger.Debug("ignoring color", "value", raw, "error", err)
		return st
	}
	st.color = &c
	return st
}

// firstFamily returns the first name of a CSS font-family list, unquoted.
func firstFamily(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

// parseFontSize converts a CSS length to points. Relative units scale the
// inherited size.
func parseFontSize(value string, inherited float64) (float64, bool) {
	if inherited == 0 {
		inherited = defaultFontSize
	}
	value = strings.ToLower(value)

	unit := ""
	for _, u := range []string{"px", "pt", "rem", "em", "%"} {
		if strings.HasSuffix(value, u) {
			unit = u
			value = strings.TrimSuffix(value, u)
			break
		}
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		return 0, false
	}

	switch unit {
	case "pt":
		return n, true
	case "em":
		return n * inherited, true
	case "rem":
		return n * defaultFontSize, true
	case "%":
		return n / 100 * inherited, true
	default:
		// px and unitless lengths: 96 px per 72 pt.
		return n * 0.75, true
	}
}

// parseFontWeight maps CSS weights onto font.Weight, where 400 is
// WeightNormal and each hundred is one step.
func parseFontWeight(value string, inherited font.Weight) (font.Weight, bool) {
	switch strings.ToLower(value) {
	case "normal":
		return font.WeightNormal, true
	case "bold":
		return font.WeightBold, true
	case "bolder":
		return min(inherited+1, font.WeightBlack), true
	case "lighter":
		return max(inherited-1, font.WeightThin), true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 100 || n > 900 || n%100 != 0 {
		return 0, false
	}
	return font.Weight(n/100 - 4), true
}

// ============================================================================
// Text collection
// ============================================================================

func (w *walker) text(data string, st style) {
	attrs := st.attributes()
	if w.preformatted > 0 {
		lines := strings.Split(data, "\n")
		for i, line := range lines {
			if i > 0 {
				w.newline(nil)
			}
			if line != "" {
				w.emit(line, attrs)
			}
		}
		return
	}

	var visible strings.Builder
	flush := func() {
		if visible.Len() > 0 {
			w.emit(visible.String(), attrs)
			visible.Reset()
		}
	}
	for _, r := range data {
		if isHTMLSpace(r) {
			if !w.space && !w.lineStart {
				flush()
				w.space = true
				w.spaceAttrs = attrs
			}
			continue
		}
		if w.space {
			flush()
			w.emit(" ", w.spaceAttrs)
		}
		visible.WriteRune(r)
		w.lineStart = false
		w.space = false
	}
	flush()
}

// emit appends text, merging with the previous run when the attributes match.
func (w *walker) emit(text string, attrs model.Attributes) {
	w.space = false
	w.lineStart = false
	w.blockClosed = false
	if n := len(w.runs); n > 0 && w.runs[n-1].Attrs.Equal(attrs) {
		w.runs[n-1].Text += text
		return
	}
	w.runs = append(w.runs, model.Run{Text: text, Attrs: attrs.Clone()})
}

func (w *walker) newline(attrs model.Attributes) {
	w.emit("\n", attrs)
	w.lineStart = true
}

func (w *walker) lineBreak(st style) {
	w.emit("\u2028", st.attributes())
	w.lineStart = true
}

func (w *walker) openBlock() {
	if !w.lineStart {
		w.newline(nil)
	}
	w.space = false
	w.blockClosed = false
}

// closeBlock ends a paragraph. Nested blocks closing together produce a
// single separator.
func (w *walker) closeBlock() {
	if w.blockClosed {
		return
	}
	w.newline(nil)
	w.blockClosed = true
}

// result drops the separator of the final block, which closes the document
// rather than starting an empty paragraph.
func (w *walker) result() *model.StyledText {
	if w.blockClosed {
		last := &w.runs[len(w.runs)-1]
		last.Text = strings.TrimSuffix(last.Text, "\n")
	}
	return model.FromRuns(w.runs...)
}

func previousCell(n *html.Node) bool {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			return true
		}
	}
	return false
}

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// skipElement reports elements whose content is never text.
func skipElement(tag string) bool {
	switch tag {
	case "head", "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "title":
		return true
	}
	return false
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "dl", "dt", "dd",
		"blockquote", "pre", "article", "section", "main", "header", "footer", "nav", "aside",
		"table", "tr", "figure", "figcaption", "address", "hr":
		return true
	}
	return false
}
