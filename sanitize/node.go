// Package sanitize turns untrusted rich-text markup into the restricted HTML subset
// that posts are stored and rendered with.
//
// Markup is parsed into an owned tree of Node values, transformed by Sanitize into a
// fresh tree built only from allow-listed tags and attributes, and rendered back to a
// string. The input tree is never mutated.
package sanitize

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeType distinguishes the node kinds the sanitizer understands.
type NodeType uint8

const (
	TextNode NodeType = iota
	ElementNode
	// CommentNode stands for every other parser node kind (comments, doctypes, ...).
	CommentNode
)

// Attr is a single attribute name/value pair.
type Attr struct {
	Key string
	Val string
}

// Node is one node of an owned markup tree. A node exclusively owns its children.
type Node struct {
	Type     NodeType
	Data     string // text value for TextNode, lower-case tag for ElementNode
	Attr     []Attr
	Children []*Node
}

// Text returns a new text node.
func Text(value string) *Node {
	return &Node{Type: TextNode, Data: value}
}

// Element returns a new element node with the given attributes and children.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Type: ElementNode, Data: tag, Attr: attrs, Children: children}
}

// AttrVal returns the value of the named attribute and whether it is present.
func (n *Node) AttrVal(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func fragmentContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// Parse parses markup as the inner HTML of a <div> and returns the top-level nodes.
func Parse(markup string) ([]*Node, error) {
	parsed, err := html.ParseFragment(strings.NewReader(markup), fragmentContext())
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	nodes := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		nodes = append(nodes, fromHTML(p))
	}
	return nodes, nil
}

func fromHTML(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return Text(h.Data)
	case html.ElementNode:
		n := &Node{Type: ElementNode, Data: strings.ToLower(h.Data)}
		for _, a := range h.Attr {
			if a.Namespace != "" {
				continue
			}
			n.Attr = append(n.Attr, Attr{Key: strings.ToLower(a.Key), Val: a.Val})
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			n.Children = append(n.Children, fromHTML(c))
		}
		return n
	default:
		return &Node{Type: CommentNode, Data: h.Data}
	}
}

func toHTML(n *Node) *html.Node {
	switch n.Type {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data}
	case ElementNode:
		h := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: atom.Lookup([]byte(n.Data))}
		for _, a := range n.Attr {
			h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		for _, c := range n.Children {
			h.AppendChild(toHTML(c))
		}
		return h
	default:
		return &html.Node{Type: html.CommentNode, Data: n.Data}
	}
}

// Render serializes nodes back to markup.
func Render(nodes []*Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, toHTML(n)); err != nil {
			return "", fmt.Errorf("render node: %w", err)
		}
	}
	return buf.String(), nil
}
