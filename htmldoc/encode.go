package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/net/html"

	"github.com/tsawler/richdoc/model"
)

// ErrUnsupportedValue is returned when a font or color attribute holds a
// value of the wrong type.
var ErrUnsupportedValue = errors.New("htmldoc: unsupported attribute value")

// lineSeparator is written as <br>.
const lineSeparator = "\u2028"

func encode(st *model.StyledText) ([]byte, error) {
	if st.IsEmpty() {
		return []byte{}, nil
	}

	var buf bytes.Buffer

	buf.WriteString("<p>")
	for i, r := range st.Runs() {
		css, err := styleFor(r.Attrs)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		for j, part := range strings.Split(r.Text, "\n") {
			if j > 0 {
				buf.WriteString("</p>\n<p>")
			}
			if part != "" {
				writeSpan(&buf, part, css)
			}
		}
	}
	buf.WriteString("</p>\n")
	return buf.Bytes(), nil
}

func writeSpan(buf *bytes.Buffer, text, css string) {
	if css != "" {
		buf.WriteString(`<span style="`)
		buf.WriteString(html.EscapeString(css))
		buf.WriteString(`">`)
	}
	for i, line := range strings.Split(text, lineSeparator) {
		if i > 0 {
			buf.WriteString("<br>")
		}
		buf.WriteString(html.EscapeString(line))
	}
	if css != "" {
		buf.WriteString("</span>")
	}
}

// styleFor renders the attributes the decoder understands as inline CSS.
func styleFor(attrs model.Attributes) (string, error) {
	var decls []string

	if v, ok := attrs[model.KeyFont]; ok {
		f, ok := v.(model.Font)
		if !ok {
			return "", fmt.Errorf("%w: font is %T", ErrUnsupportedValue, v)
		}
		if math.IsNaN(f.Size) || math.IsInf(f.Size, 0) || f.Size < 0 {
			return "", fmt.Errorf("%w: font size %v", ErrUnsupportedValue, f.Size)
		}
		if f.Family != "" {
			decls = append(decls, fmt.Sprintf("font-family: %q", f.Family))
		}
		if f.Size > 0 {
			decls = append(decls, "font-size: "+strconv.FormatFloat(f.Size, 'f', -1, 64)+"pt")
		}
		switch {
		case f.Weight == font.WeightBold:
			decls = append(decls, "font-weight: bold")
		case f.Weight != font.WeightNormal:
			decls = append(decls, "font-weight: "+strconv.Itoa((int(f.Weight)+4)*100))
		}
		switch f.Style {
		case font.StyleItalic:
			decls = append(decls, "font-style: italic")
		case font.StyleOblique:
			decls = append(decls, "font-style: oblique")
		}
	}

	if v, ok := attrs[model.KeyForegroundColor]; ok {
		c, ok := v.(model.Color)
		if !ok {
			return "", fmt.Errorf("%w: color is %T", ErrUnsupportedValue, v)
		}
		decls = append(decls, "color: "+c.Hex())
	}

	if attrs.Underline() {
		decls = append(decls, "text-decoration: underline")
	}
	return strings.Join(decls, "; "), nil
}
