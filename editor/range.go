package editor

import (
	"errors"
	"unicode/utf16"

	"golang.org/x/net/html"
)

// Point is a DOM boundary point.
type Point struct {
	Node   *html.Node
	Offset int
}

// Range is a pair of ordered boundary points inside one tree.
type Range struct {
	Start Point
	End   Point
}

// Collapsed reports whether the range is empty.
func (r *Range) Collapsed() bool {
	return r.Start == r.End
}

// SetStart moves the start point; an end before the new start collapses onto it.
func (r *Range) SetStart(p Point) {
	r.Start = p
	if rootOf(r.End.Node) != rootOf(p.Node) || comparePoints(p, r.End) > 0 {
		r.End = p
	}
}

// Collapse collapses the range onto its start or end.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.End = r.Start
	} else {
		r.Start = r.End
	}
}

// DeleteContents removes everything between the range's points and collapses it,
// following the DOM "delete the contents" algorithm.
func (r *Range) DeleteContents() error {
	if r.Collapsed() {
		return nil
	}
	sn, so := r.Start.Node, r.Start.Offset
	en, eo := r.End.Node, r.End.Offset

	if sn == en && isCharacterData(sn) {
		replaceData(sn, so, eo-so)
		r.End = r.Start
		return nil
	}

	var remove []*html.Node
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r.contains(c) {
				remove = append(remove, c)
				continue
			}
			collect(c)
		}
	}
	collect(rootOf(sn))

	newPoint := r.Start
	if !isInclusiveAncestor(sn, en) {
		ref := sn
		for ref.Parent != nil && !isInclusiveAncestor(ref.Parent, en) {
			ref = ref.Parent
		}
		if ref.Parent == nil {
			return errors.New("editor: range endpoints do not share a root")
		}
		newPoint = Point{Node: ref.Parent, Offset: indexOf(ref) + 1}
	}

	if isCharacterData(sn) {
		replaceData(sn, so, nodeLength(sn)-so)
	}
	for _, n := range remove {
		n.Parent.RemoveChild(n)
	}
	if isCharacterData(en) {
		replaceData(en, 0, eo)
	}
	r.Start, r.End = newPoint, newPoint
	return nil
}

// InsertNode inserts n at the range's start, splitting a text node when the start
// lies inside one.
func (r *Range) InsertNode(n *html.Node) error {
	sn, so := r.Start.Node, r.Start.Offset
	collapsed := r.Collapsed()

	var parent, ref *html.Node
	switch {
	case sn.Type == html.CommentNode, sn == n:
		return errors.New("editor: cannot insert at this boundary point")
	case sn.Type == html.TextNode:
		parent = sn.Parent
		if parent == nil {
			return errors.New("editor: cannot insert beside a detached text node")
		}
		ref = splitText(sn, so)
		if r.End.Node == sn && r.End.Offset > so {
			r.End = Point{Node: ref, Offset: r.End.Offset - so}
		}
	default:
		parent = sn
		ref = childAt(sn, so)
	}
	if ref == n {
		ref = n.NextSibling
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}

	parent.InsertBefore(n, ref)
	newOffset := indexOf(n) + 1
	if collapsed {
		r.End = Point{Node: parent, Offset: newOffset}
	} else if r.End.Node == parent && r.End.Offset >= newOffset {
		r.End.Offset++
	}
	return nil
}

// contains reports whether n lies entirely inside the range.
func (r *Range) contains(n *html.Node) bool {
	return comparePoints(Point{Node: n, Offset: 0}, r.Start) > 0 &&
		comparePoints(Point{Node: n, Offset: nodeLength(n)}, r.End) < 0
}

// Selection holds the user's current ranges. Browsers keep at most one.
type Selection struct {
	ranges []*Range
}

// RangeCount returns the number of ranges.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// RangeAt returns the i-th range.
func (s *Selection) RangeAt(i int) *Range {
	return s.ranges[i]
}

// RemoveAllRanges empties the selection.
func (s *Selection) RemoveAllRanges() {
	s.ranges = nil
}

// AddRange adds r when the selection is empty; extra ranges are ignored.
func (s *Selection) AddRange(r *Range) {
	if len(s.ranges) == 0 {
		s.ranges = append(s.ranges, r)
	}
}

// comparePoints orders two boundary points of the same tree by tree position.
func comparePoints(a, b Point) int {
	ka, kb := pointKey(a), pointKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		switch {
		case ka[i] < kb[i]:
			return -1
		case ka[i] > kb[i]:
			return 1
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return 0
}

// pointKey is the child-index path to the point's node followed by its offset.
// Lexicographic order of keys is document order of boundary points.
func pointKey(p Point) []int {
	var rev []int
	for n := p.Node; n.Parent != nil; n = n.Parent {
		rev = append(rev, indexOf(n))
	}
	key := make([]int, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		key = append(key, rev[i])
	}
	return append(key, p.Offset)
}

func rootOf(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

func isInclusiveAncestor(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

func isCharacterData(n *html.Node) bool {
	return n.Type == html.TextNode || n.Type == html.CommentNode
}

func nodeLength(n *html.Node) int {
	if isCharacterData(n) {
		return len(utf16.Encode([]rune(n.Data)))
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// replaceData deletes count UTF-16 code units starting at offset.
func replaceData(n *html.Node, offset, count int) {
	u := utf16.Encode([]rune(n.Data))
	if offset > len(u) {
		return
	}
	end := offset + count
	if end > len(u) {
		end = len(u)
	}
	n.Data = string(utf16.Decode(append(u[:offset:offset], u[end:]...)))
}

// splitText splits a text node at offset and returns the new node holding the tail.
func splitText(n *html.Node, offset int) *html.Node {
	u := utf16.Encode([]rune(n.Data))
	if offset > len(u) {
		offset = len(u)
	}
	tail := &html.Node{Type: html.TextNode, Data: string(utf16.Decode(u[offset:]))}
	n.Data = string(utf16.Decode(u[:offset]))
	n.Parent.InsertBefore(tail, n.NextSibling)
	return tail
}
