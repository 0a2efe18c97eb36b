package editor

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/eringen/inkwell/sanitize"
)

// ImageClass marks images inserted while editing. The sanitizer replaces it with
// its own marker at publish time.
const ImageClass = "editor-inline-image"

// InsertImage places an image block at the user's selection and leaves the caret in a
// fresh paragraph after it. Paragraphs, headings and inline elements around the
// selection are split so the block lands in a container that may hold it, and the
// rendered surface parses back to the same tree. Without a selection the block is appended to the end of
// the surface followed by an empty paragraph, and no caret is set.
func InsertImage(s *Surface, sel *Selection, src string) error {
	if !sanitize.IsSafeImageSource(src) {
		return ErrUnsafeImage
	}

	img := newElement("img")
	img.Attr = []html.Attribute{
		{Key: "src", Val: src},
		{Key: "alt", Val: sanitize.DefaultImageAlt},
		{Key: "class", Val: ImageClass},
	}
	block := newElement("p")
	block.AppendChild(img)

	if sel == nil || sel.RangeCount() == 0 {
		s.root.AppendChild(block)
		s.root.AppendChild(newElement("p"))
		return nil
	}

	r := sel.RangeAt(0)
	if rootOf(r.Start.Node) != s.root || rootOf(r.End.Node) != s.root {
		return fmt.Errorf("%w: selection is outside the surface", ErrInvalidPath)
	}
	if err := r.DeleteContents(); err != nil {
		return err
	}
	r.SetStart(s.liftToFlow(r.Start))
	r.Collapse(true)
	if err := r.InsertNode(block); err != nil {
		return err
	}

	spacer := newElement("p")
	spacer.AppendChild(newElement("br"))
	block.Parent.InsertBefore(spacer, block.NextSibling)

	r.SetStart(Point{Node: spacer, Offset: 0})
	r.Collapse(true)
	sel.RemoveAllRanges()
	sel.AddRange(r)
	return nil
}

// flowContainers may hold a paragraph without the parser closing or moving it.
var flowContainers = map[string]bool{
	"div": true, "li": true, "blockquote": true, "section": true, "article": true,
	"aside": true, "header": true, "footer": true, "main": true, "nav": true,
	"td": true, "th": true, "dd": true, "figure": true,
}

// liftToFlow moves p up to the nearest flow container, splitting every element
// it leaves at the point. Nothing is split when p sits at either edge of an element.
func (s *Surface) liftToFlow(p Point) Point {
	n, off := p.Node, p.Offset
	if isCharacterData(n) {
		idx := indexOf(n)
		switch {
		case off == 0:
			off = idx
		case off >= nodeLength(n), n.Type == html.CommentNode:
			off = idx + 1
		default:
			splitText(n, off)
			off = idx + 1
		}
		n = n.Parent
	}
	for n != s.root && n.Parent != nil && !flowContainers[n.Data] {
		idx := indexOf(n)
		switch {
		case off == 0:
			off = idx
		case off >= nodeLength(n):
			off = idx + 1
		default:
			splitElement(n, off)
			off = idx + 1
		}
		n = n.Parent
	}
	return Point{Node: n, Offset: off}
}

// splitElement moves the children of n from index at onward into a shallow copy
// of n inserted right after it.
func splitElement(n *html.Node, at int) {
	tail := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := childAt(n, at); c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		tail.AppendChild(c)
		c = next
	}
	n.Parent.InsertBefore(tail, n.NextSibling)
}
