package htmldoc

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	colorPattern    = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})|rgb\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\)|inherit)$`)
	sizePattern     = regexp.MustCompile(`^(\d+(\.\d+)?(px|pt|em|rem|%)?|inherit)$`)
	familyPattern   = regexp.MustCompile(`^[\p{L}\p{N}\s"',._-]+$`)
	weightPattern   = regexp.MustCompile(`^(normal|bold|bolder|lighter|[1-9]00)$`)
	slantPattern    = regexp.MustCompile(`^(normal|italic|oblique)$`)
	decoratePattern = regexp.MustCompile(`^(none|underline)$`)
)

// newPolicy returns the sanitizer applied to every decoded page. It is
// bluemonday's user generated content policy extended with the inline
// styles the decoder understands.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("span", "div", "p", "b", "i", "u", "strong", "em", "ins", "br")
	p.AllowAttrs("color").Matching(colorPattern).OnElements("font")
	p.AllowAttrs("face").Matching(familyPattern).OnElements("font")

	p.AllowStyles("color").Matching(colorPattern).Globally()
	p.AllowStyles("font-size").Matching(sizePattern).Globally()
	p.AllowStyles("font-family").Matching(familyPattern).Globally()
	p.AllowStyles("font-weight").Matching(weightPattern).Globally()
	p.AllowStyles("font-style").Matching(slantPattern).Globally()
	p.AllowStyles("text-decoration", "text-decoration-line").Matching(decoratePattern).Globally()

	return p
}

// policy is never modified after initialization.
var policy = newPolicy()
