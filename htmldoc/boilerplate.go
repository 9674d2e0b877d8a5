package htmldoc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Boilerplate controls how navigation, page headers and footers are dropped
// from pasted or loaded pages before their text is decoded.
type Boilerplate int

const (
	// KeepBoilerplate decodes everything.
	KeepBoilerplate Boilerplate = iota

	// DropSemantic removes <nav>, <aside> and the navigation/complementary
	// ARIA roles. <header> and <footer> are removed only when they sit
	// directly under <body> or under a single wrapper element.
	DropSemantic

	// DropPatterned adds class and id matching for common boilerplate names
	// such as navbar, menu, sidebar and footer.
	DropPatterned

	// DropLinkHeavy also removes containers that are mostly link text.
	DropLinkHeavy
)

func (b Boilerplate) String() string {
	switch b {
	case KeepBoilerplate:
		return "keep"
	case DropSemantic:
		return "semantic"
	case DropPatterned:
		return "patterned"
	case DropLinkHeavy:
		return "link-heavy"
	default:
		return fmt.Sprintf("Boilerplate(%d)", int(b))
	}
}

// boilerplateNames matches class and id values used for site chrome.
var boilerplateNames = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumbs?|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget|aside)([^a-z]|$)`)

// Link-heavy containers: more than this share of their text inside links,
// with at least minLinks links.
const (
	linkDensityThreshold = 0.6
	minLinks             = 4
)

// pruner removes boilerplate subtrees from a parsed page.
type pruner struct {
	mode    Boilerplate
	body    *html.Node
	wrapper *html.Node // single top-level div or main, if present
}

// pruneBoilerplate parses data, removes the subtrees mode selects and
// renders the remaining tree back to HTML.
func pruneBoilerplate(data []byte, mode Boilerplate) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	p := &pruner{mode: mode}
	p.body = findElement(doc, "body")
	if p.body == nil {
		p.body = doc
	}
	p.wrapper = singleWrapper(p.body)
	p.prune(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *pruner) prune(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if p.drop(c) {
			n.RemoveChild(c)
			continue
		}
		p.prune(c)
	}
}

// singleWrapper returns the only structural child of body, as in
// <body><div id="page">...</div></body>.
func singleWrapper(body *html.Node) *html.Node {
	var found *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "div", "main":
			if found != nil {
				return nil
			}
			found = c
		case "script", "style", "noscript", "template":
		default:
			return nil
		}
	}
	return found
}

func (p *pruner) drop(n *html.Node) bool {
	if n.Type != html.ElementNode || p.mode == KeepBoilerplate {
		return false
	}
	if p.semantic(n) {
		return true
	}
	if p.mode >= DropPatterned && patterned(n) {
		return true
	}
	return p.mode >= DropLinkHeavy && linkHeavy(n)
}

func (p *pruner) semantic(n *html.Node) bool {
	switch n.Data {
	case "nav", "aside":
		return true
	case "header", "footer":
		return p.topLevel(n)
	}

	switch getAttr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return p.topLevel(n)
	}
	return false
}

func (p *pruner) topLevel(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	return n.Parent == p.body || (p.wrapper != nil && n.Parent == p.wrapper)
}

func patterned(n *html.Node) bool {
	if class := getAttr(n, "class"); class != "" && boilerplateNames.MatchString(class) {
		return true
	}
	id := getAttr(n, "id")
	return id != "" && boilerplateNames.MatchString(id)
}

func linkHeavy(n *html.Node) bool {
	switch n.Data {
	case "div", "section", "ul", "ol":
	default:
		return false
	}
	total := textLength(n)
	if total == 0 || countLinks(n) < minLinks {
		return false
	}
	return float64(linkTextLength(n))/float64(total) > linkDensityThreshold
}

func textLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return len(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

func linkTextLength(n *html.Node) int {
	if n.Type == html.ElementNode && n.Data == "a" {
		return textLength(n)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += linkTextLength(c)
	}
	return total
}

func countLinks(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == "a" {
		count = 1
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countLinks(c)
	}
	return count
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// getAttr returns the value of an attribute on a node, or "" if absent.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
