package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestHomeEscapesPostFields(t *testing.T) {
	page := inkwell.HomePage{
		Chrome: inkwell.Chrome{SiteName: "Inkwell", Meta: inkwell.PageMeta{Title: "Inkwell"}},
		Posts: []inkwell.Post{{
			ID:       5,
			Title:    `<script>alert("x")</script>`,
			Excerpt:  "a & b",
			Category: "Tech",
			Accent:   "blue",
		}},
		Categories: []string{"Tech"},
		Filter:     inkwell.Filter{Category: "Tech", Sort: inkwell.SortNewest},
	}
	out := renderString(t, Home(page))

	if strings.Contains(out, `<script>alert`) {
		t.Errorf("Home rendered unescaped title: %s", out)
	}
	for _, want := range []string{
		`&lt;script&gt;`,
		`a &amp; b`,
		`href="/post?id=5"`,
		`data-accent="blue"`,
		`1 post shown`,
		`<option value="Tech" selected>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Home output missing %q", want)
		}
	}
}

func TestHomeEmptyState(t *testing.T) {
	out := renderString(t, Home(inkwell.HomePage{Filter: inkwell.Filter{Category: "all"}}))
	for _, want := range []string{"No posts found", "0 posts shown", `href="/create"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Home output missing %q", want)
		}
	}
}

func TestPostRendersSanitizedContent(t *testing.T) {
	page := inkwell.PostPage{
		Chrome: inkwell.Chrome{SiteName: "Inkwell", Theme: inkwell.ThemeDark},
		Post: inkwell.Post{
			ID:      9,
			Title:   "Hello",
			Content: `<p>Safe <a>link</a></p>`,
			Image:   inkwell.DefaultImage,
		},
	}
	out := renderString(t, Post(page))
	for _, want := range []string{
		`<p>Safe <a>link</a></p>`,
		`class="dark-mode"`,
		`Switch to light mode`,
		`application/ld+json`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Post output missing %q", want)
		}
	}
}

func TestCreateShowsStatusAndToken(t *testing.T) {
	page := inkwell.CreatePage{
		Chrome:  inkwell.Chrome{CSRF: "csrf-1"},
		Form:    inkwell.PostForm{Title: `"quoted"`, Accent: "mint", Content: "<p>Draft</p>"},
		Token:   "tok-1",
		Status:  "Please add post content before publishing.",
		Accents: inkwell.Accents,
	}
	out := renderString(t, Create(page))
	for _, want := range []string{
		`name="token" value="tok-1"`,
		`name="_csrf" value="csrf-1"`,
		`value="&#34;quoted&#34;"`,
		`<option value="mint" selected>`,
		`Please add post content before publishing.`,
		`contenteditable="true" role="textbox" aria-multiline="true"><p>Draft</p></div>`,
		`/public/editor.js`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Create output missing %q", want)
		}
	}
}

func TestHomeReturnPath(t *testing.T) {
	tests := []struct {
		f    inkwell.Filter
		want string
	}{
		{inkwell.Filter{}, "/"},
		{inkwell.Filter{Category: "all", Sort: inkwell.SortNewest}, "/"},
		{inkwell.Filter{Search: "go", Sort: inkwell.SortTitle}, "/?q=go&sort=title"},
		{inkwell.Filter{Category: "Tech"}, "/?category=Tech"},
	}
	for _, tt := range tests {
		if got := HomeReturnPath(tt.f); got != tt.want {
			t.Errorf("HomeReturnPath(%+v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}
