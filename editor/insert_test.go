package editor

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/eringen/inkwell/sanitize"
)

const (
	testImage   = "data:image/png;base64,AAA="
	insertedImg = `<p><img src="data:image/png;base64,AAA=" alt="Inline blog image" class="editor-inline-image"/></p>`
)

func loadSurface(t *testing.T, markup string) *Surface {
	t.Helper()
	s, err := Load(markup)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", markup, err)
	}
	return s
}

func surfaceHTML(t *testing.T, s *Surface) string {
	t.Helper()
	out, err := s.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	return out
}

func TestInsertImageWithoutSelectionAppends(t *testing.T) {
	s := loadSurface(t, "<p>Hello</p>")
	if err := InsertImage(s, nil, testImage); err != nil {
		t.Fatalf("InsertImage failed: %v", err)
	}
	want := "<p>Hello</p>" + insertedImg + "<p></p>"
	if got := surfaceHTML(t, s); got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}

	empty := &Selection{}
	if err := InsertImage(s, empty, testImage); err != nil {
		t.Fatalf("InsertImage with empty selection failed: %v", err)
	}
	if empty.RangeCount() != 0 {
		t.Errorf("empty selection gained %d ranges", empty.RangeCount())
	}
}

func TestInsertImageAtSelection(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		state     SelectionState
		wantHTML  string
		wantCaret Boundary
	}{
		{
			name:      "caret inside text splits it",
			markup:    "<p>Hello world</p>",
			state:     SelectionState{Start: Boundary{Path: []int{0, 0}, Offset: 5}},
			wantHTML:  "<p>Hello</p>" + insertedImg + "<p><br/></p><p> world</p>",
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:      "caret between blocks",
			markup:    "<p>a</p><p>b</p>",
			state:     SelectionState{Start: Boundary{Path: []int{}, Offset: 1}},
			wantHTML:  "<p>a</p>" + insertedImg + "<p><br/></p><p>b</p>",
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:   "selected text is replaced",
			markup: "<p>Hello big world</p>",
			state: SelectionState{
				Start: Boundary{Path: []int{0, 0}, Offset: 6},
				End:   &Boundary{Path: []int{0, 0}, Offset: 10},
			},
			wantHTML:  "<p>Hello </p>" + insertedImg + "<p><br/></p><p>world</p>",
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:   "selection across paragraphs",
			markup: "<p>One</p><p>Two</p><p>Three</p>",
			state: SelectionState{
				Start: Boundary{Path: []int{0, 0}, Offset: 1},
				End:   &Boundary{Path: []int{2, 0}, Offset: 2},
			},
			wantHTML:  "<p>O</p>" + insertedImg + "<p><br/></p><p>ree</p>",
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:   "reversed endpoints are ordered",
			markup: "<p>abcdef</p>",
			state: SelectionState{
				Start: Boundary{Path: []int{0, 0}, Offset: 4},
				End:   &Boundary{Path: []int{0, 0}, Offset: 2},
			},
			wantHTML:  "<p>ab</p>" + insertedImg + "<p><br/></p><p>ef</p>",
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:      "offsets count utf-16 code units",
			markup:    "<p>é😀x</p>",
			state:     SelectionState{Start: Boundary{Path: []int{0, 0}, Offset: 3}},
			wantHTML:  "<p>é😀</p>" + insertedImg + "<p><br/></p><p>x</p>",
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:      "caret at paragraph start goes before it",
			markup:    "<p>Hello</p>",
			state:     SelectionState{Start: Boundary{Path: []int{0, 0}, Offset: 0}},
			wantHTML:  insertedImg + "<p><br/></p><p>Hello</p>",
			wantCaret: Boundary{Path: []int{1}, Offset: 0},
		},
		{
			name:      "inline and heading ancestors are split",
			markup:    `<h2><a href="/x">Read <b>more</b></a></h2>`,
			state:     SelectionState{Start: Boundary{Path: []int{0, 0, 1, 0}, Offset: 2}},
			wantHTML:  `<h2><a href="/x">Read <b>mo</b></a></h2>` + insertedImg + `<p><br/></p><h2><a href="/x"><b>re</b></a></h2>`,
			wantCaret: Boundary{Path: []int{2}, Offset: 0},
		},
		{
			name:      "list item holds the block",
			markup:    "<ul><li>ab</li></ul>",
			state:     SelectionState{Start: Boundary{Path: []int{0, 0, 0}, Offset: 1}},
			wantHTML:  "<ul><li>a" + insertedImg + "<p><br/></p>b</li></ul>",
			wantCaret: Boundary{Path: []int{0, 0, 2}, Offset: 0},
		},
		{
			name:      "paragraph inside a div is split within it",
			markup:    "<div><p>ab</p></div>",
			state:     SelectionState{Start: Boundary{Path: []int{0, 0, 0}, Offset: 1}},
			wantHTML:  "<div><p>a</p>" + insertedImg + "<p><br/></p><p>b</p></div>",
			wantCaret: Boundary{Path: []int{0, 2}, Offset: 0},
		},
		{
			name:      "empty surface",
			markup:    "",
			state:     SelectionState{Start: Boundary{Path: []int{}, Offset: 0}},
			wantHTML:  insertedImg + "<p><br/></p>",
			wantCaret: Boundary{Path: []int{1}, Offset: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadSurface(t, tt.markup)
			state := tt.state
			sel, err := s.Selection(&state)
			if err != nil {
				t.Fatalf("Selection failed: %v", err)
			}
			if err := InsertImage(s, sel, testImage); err != nil {
				t.Fatalf("InsertImage failed: %v", err)
			}
			if got := surfaceHTML(t, s); got != tt.wantHTML {
				t.Errorf("HTML = %q, want %q", got, tt.wantHTML)
			}
			if sel.RangeCount() != 1 || !sel.RangeAt(0).Collapsed() {
				t.Fatalf("expected one collapsed range after insert")
			}
			caret, err := s.Caret(sel)
			if err != nil {
				t.Fatalf("Caret failed: %v", err)
			}
			if !reflect.DeepEqual(*caret, tt.wantCaret) {
				t.Errorf("caret = %+v, want %+v", *caret, tt.wantCaret)
			}
			spacer, err := s.Resolve(caret.Path)
			if err != nil {
				t.Fatalf("Resolve caret failed: %v", err)
			}
			if spacer.Data != "p" || spacer.PrevSibling == nil || spacer.PrevSibling.FirstChild == nil ||
				spacer.PrevSibling.FirstChild.Data != "img" {
				t.Errorf("caret does not sit in the paragraph following the image")
			}

			// The browser replaces the editor's markup with this output, so it must
			// parse back to the same tree for the caret to resolve.
			out := surfaceHTML(t, s)
			reloaded := loadSurface(t, out)
			if again := surfaceHTML(t, reloaded); again != out {
				t.Errorf("reloaded HTML = %q, want %q", again, out)
			}
			n, err := reloaded.Resolve(caret.Path)
			if err != nil {
				t.Fatalf("Resolve caret after reload failed: %v", err)
			}
			if n.Data != "p" || n.FirstChild == nil || n.FirstChild.Data != "br" {
				t.Errorf("caret after reload names <%s>, want the empty paragraph", n.Data)
			}
		})
	}
}

func TestInsertImageRejectsUnsafeSource(t *testing.T) {
	s := loadSurface(t, "<p>keep</p>")
	for _, src := range []string{"javascript:alert(1)", "data:text/html,<b>x</b>", ""} {
		if err := InsertImage(s, nil, src); !errors.Is(err, ErrUnsafeImage) {
			t.Errorf("InsertImage(%q) error = %v, want ErrUnsafeImage", src, err)
		}
	}
	if got := surfaceHTML(t, s); got != "<p>keep</p>" {
		t.Errorf("surface changed after rejected inserts: %q", got)
	}
}

func TestSelectionRejectsBadBoundaries(t *testing.T) {
	s := loadSurface(t, "<p>abc</p>")
	if _, err := s.Selection(&SelectionState{Start: Boundary{Path: []int{3}}}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
	if _, err := s.Selection(&SelectionState{Start: Boundary{Path: []int{0, 0}, Offset: 4}}); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
	br := loadSurface(t, "<p>a<br>b</p>")
	if _, err := br.Selection(&SelectionState{Start: Boundary{Path: []int{0, 1}, Offset: 0}}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("boundary inside <br>: expected ErrInvalidPath, got %v", err)
	}
	sel, err := s.Selection(nil)
	if err != nil || sel != nil {
		t.Errorf("Selection(nil) = %v, %v; want nil, nil", sel, err)
	}
}

func TestInsertedImageSurvivesSanitizer(t *testing.T) {
	s := loadSurface(t, "<p>Intro</p>")
	sel, err := s.Selection(&SelectionState{Start: Boundary{Path: []int{0, 0}, Offset: 5}})
	if err != nil {
		t.Fatalf("Selection failed: %v", err)
	}
	if err := InsertImage(s, sel, testImage); err != nil {
		t.Fatalf("InsertImage failed: %v", err)
	}
	clean, err := sanitize.SanitizeHTML(surfaceHTML(t, s))
	if err != nil {
		t.Fatalf("SanitizeHTML failed: %v", err)
	}
	want := `<img src="data:image/png;base64,AAA=" alt="Inline blog image" class="post-inline-image"/>`
	if !strings.Contains(clean, want) {
		t.Errorf("sanitized surface %q lacks %q", clean, want)
	}
}

func TestInsertImageTwiceAtReturnedCaret(t *testing.T) {
	s := loadSurface(t, "<p>Hello world</p>")
	sel, err := s.Selection(&SelectionState{Start: Boundary{Path: []int{0, 0}, Offset: 5}})
	if err != nil {
		t.Fatalf("Selection failed: %v", err)
	}
	if err := InsertImage(s, sel, testImage); err != nil {
		t.Fatalf("first InsertImage failed: %v", err)
	}
	caret, err := s.Caret(sel)
	if err != nil {
		t.Fatalf("Caret failed: %v", err)
	}

	next := loadSurface(t, surfaceHTML(t, s))
	sel, err = next.Selection(&SelectionState{Start: *caret})
	if err != nil {
		t.Fatalf("Selection at returned caret failed: %v", err)
	}
	if err := InsertImage(next, sel, testImage); err != nil {
		t.Fatalf("second InsertImage failed: %v", err)
	}
	want := "<p>Hello</p>" + insertedImg + insertedImg + "<p><br/></p><p><br/></p><p> world</p>"
	if got := surfaceHTML(t, next); got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
}

func TestDeleteContentsInsideElement(t *testing.T) {
	s := loadSurface(t, "<ul><li>a</li><li>b</li><li>c</li></ul>")
	ul, err := s.Resolve([]int{0})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r := &Range{Start: Point{Node: ul, Offset: 0}, End: Point{Node: ul, Offset: 2}}
	if err := r.DeleteContents(); err != nil {
		t.Fatalf("DeleteContents failed: %v", err)
	}
	if got := surfaceHTML(t, s); got != "<ul><li>c</li></ul>" {
		t.Errorf("HTML = %q, want %q", got, "<ul><li>c</li></ul>")
	}
	if r.Start != (Point{Node: ul, Offset: 0}) || !r.Collapsed() {
		t.Errorf("range not collapsed at start: %+v", r)
	}
}
