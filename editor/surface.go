// Package editor models the live editable surface of the compose page and the
// cursor-aware operations performed on it before the content is published.
//
// Unlike the sanitizer, which builds fresh trees, the surface is mutated in place:
// it stands in for the browser's contenteditable element, and boundary points follow
// the DOM Range conventions (text offsets in UTF-16 code units, element offsets in
// children).
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrUnsafeImage is returned when an image source would not survive sanitization.
	ErrUnsafeImage = errors.New("editor: image source is not an allowed image")
	// ErrInvalidPath is returned when a boundary path does not resolve inside the surface.
	ErrInvalidPath = errors.New("editor: boundary path does not resolve")
	// ErrInvalidOffset is returned when a boundary offset exceeds its node's length.
	ErrInvalidOffset = errors.New("editor: boundary offset out of range")
)

// Surface is the editable root element holding the draft markup.
type Surface struct {
	root *html.Node
}

// Load parses markup as the inner HTML of a new editable surface.
func Load(markup string) (*Surface, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("editor: parse surface: %w", err)
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Surface{root: root}, nil
}

// Root returns the surface's root element.
func (s *Surface) Root() *html.Node {
	return s.root
}

// HTML renders the surface's inner markup.
func (s *Surface) HTML() (string, error) {
	var buf bytes.Buffer
	for c := s.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("editor: render surface: %w", err)
		}
	}
	return buf.String(), nil
}

// Resolve walks a child-index path from the root.
func (s *Surface) Resolve(path []int) (*html.Node, error) {
	n := s.root
	for _, idx := range path {
		c := childAt(n, idx)
		if c == nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, path)
		}
		n = c
	}
	return n, nil
}

// PathOf returns the child-index path from the root to n.
func (s *Surface) PathOf(n *html.Node) ([]int, error) {
	var rev []int
	for cur := n; cur != s.root; cur = cur.Parent {
		if cur == nil || cur.Parent == nil {
			return nil, ErrInvalidPath
		}
		rev = append(rev, indexOf(cur))
	}
	path := make([]int, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = idx
	}
	return path, nil
}

// Boundary is the wire form of a boundary point: a path from the surface root and
// an offset inside the node it names.
type Boundary struct {
	Path   []int `json:"path"`
	Offset int   `json:"offset"`
}

// SelectionState is the wire form of the client's selection. A missing End means
// a collapsed caret at Start.
type SelectionState struct {
	Start Boundary  `json:"start"`
	End   *Boundary `json:"end,omitempty"`
}

func (s *Surface) point(b Boundary) (Point, error) {
	n, err := s.Resolve(b.Path)
	if err != nil {
		return Point{}, err
	}
	if n.Type == html.ElementNode && voidElements[n.DataAtom] {
		return Point{}, fmt.Errorf("%w: %v names a <%s>", ErrInvalidPath, b.Path, n.Data)
	}
	if b.Offset < 0 || b.Offset > nodeLength(n) {
		return Point{}, fmt.Errorf("%w: %d", ErrInvalidOffset, b.Offset)
	}
	return Point{Node: n, Offset: b.Offset}, nil
}

// voidElements never have children, so they cannot contain a boundary point.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true, atom.Embed: true,
	atom.Hr: true, atom.Img: true, atom.Input: true, atom.Link: true, atom.Meta: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Selection converts a wire selection into a live one. A nil state yields a nil
// selection, meaning the editor had no focus.
func (s *Surface) Selection(state *SelectionState) (*Selection, error) {
	if state == nil {
		return nil, nil
	}
	start, err := s.point(state.Start)
	if err != nil {
		return nil, err
	}
	end := start
	if state.End != nil {
		if end, err = s.point(*state.End); err != nil {
			return nil, err
		}
	}
	if comparePoints(start, end) > 0 {
		start, end = end, start
	}
	sel := &Selection{}
	sel.AddRange(&Range{Start: start, End: end})
	return sel, nil
}

// Caret returns the wire form of the selection's first range start, or nil when
// there is no range.
func (s *Surface) Caret(sel *Selection) (*Boundary, error) {
	if sel == nil || sel.RangeCount() == 0 {
		return nil, nil
	}
	start := sel.RangeAt(0).Start
	path, err := s.PathOf(start.Node)
	if err != nil {
		return nil, err
	}
	return &Boundary{Path: path, Offset: start.Offset}, nil
}

func childAt(n *html.Node, idx int) *html.Node {
	if idx < 0 {
		return nil
	}
	c := n.FirstChild
	for i := 0; c != nil && i < idx; i++ {
		c = c.NextSibling
	}
	return c
}

func indexOf(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

func newElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}
