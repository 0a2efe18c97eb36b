package sanitize

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultImageAlt is used when an image arrives without alt text.
	DefaultImageAlt = "Inline blog image"
	// ImageClass marks sanitized inline images for styling.
	ImageClass = "post-inline-image"
)

var allowedTags = map[string]struct{}{
	"p": {}, "br": {}, "strong": {}, "em": {}, "b": {}, "i": {}, "u": {},
	"a": {}, "ul": {}, "ol": {}, "li": {}, "blockquote": {}, "h2": {}, "h3": {},
	"img": {},
}

var strictPolicy = bluemonday.StrictPolicy()

// IsAllowedTag reports whether tag survives sanitization as an element.
func IsAllowedTag(tag string) bool {
	_, ok := allowedTags[tag]
	return ok
}

// Sanitize returns the safe equivalent of n: nothing, a single fresh node, or the
// spliced children of an unwrapped element.
func Sanitize(n *Node) []*Node {
	switch n.Type {
	case TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return []*Node{Text(n.Data)}
	case ElementNode:
	default:
		return nil
	}

	if n.Data == "img" {
		if img := sanitizeImage(n); img != nil {
			return []*Node{img}
		}
		return nil
	}

	children := SanitizeFragment(n.Children)
	if !IsAllowedTag(n.Data) {
		return children
	}

	var attrs []Attr
	if n.Data == "a" {
		if href, _ := n.AttrVal("href"); IsSafeLinkTarget(href) {
			attrs = []Attr{
				{Key: "href", Val: href},
				{Key: "target", Val: "_blank"},
				{Key: "rel", Val: "noopener noreferrer"},
			}
		}
	}
	return []*Node{Element(n.Data, attrs, children...)}
}

func sanitizeImage(n *Node) *Node {
	src, _ := n.AttrVal("src")
	if !IsSafeImageSource(src) {
		return nil
	}
	alt, _ := n.AttrVal("alt")
	if alt == "" {
		alt = DefaultImageAlt
	}
	return Element("img", []Attr{
		{Key: "src", Val: src},
		{Key: "alt", Val: alt},
		{Key: "class", Val: ImageClass},
	})
}

// SanitizeFragment sanitizes each node in order and concatenates the results.
func SanitizeFragment(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		out = append(out, Sanitize(n)...)
	}
	return out
}

// maxPasses bounds the re-sanitize loop in SanitizeHTML.
const maxPasses = 8

// SanitizeHTML parses markup, sanitizes it and renders the trimmed result.
// Unwrapping can leave nestings the parser restructures on the next read
// (<h2>a<div><h2>b</h2></div></h2>), so the result is fed back through until
// it no longer changes.
func SanitizeHTML(markup string) (string, error) {
	out, err := sanitizeOnce(markup)
	if err != nil {
		return "", err
	}
	for i := 1; i < maxPasses; i++ {
		next, err := sanitizeOnce(out)
		if err != nil {
			return "", err
		}
		if next == out {
			break
		}
		out = next
	}
	return out, nil
}

func sanitizeOnce(markup string) (string, error) {
	nodes, err := Parse(markup)
	if err != nil {
		return "", err
	}
	out, err := Render(SanitizeFragment(nodes))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HasVisibleContent reports whether markup shows anything: non-whitespace text or
// at least one image.
func HasVisibleContent(markup string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return false
	}
	body := doc.Find("body")
	if body.Find("img").Length() > 0 {
		return true
	}
	return strings.TrimSpace(body.Text()) != ""
}

// PlainText strips all markup from a single-line form value.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
