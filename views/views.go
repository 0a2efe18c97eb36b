// Package views holds the default page components. They are plain
// templ.ComponentFunc values so the package builds without templ generate.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
)

// Default returns the built-in views.
func Default() inkwell.ViewFuncs {
	return inkwell.ViewFuncs{
		Home:        Home,
		Post:        Post,
		Create:      Create,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

// writer accumulates the first write error so templates read top to bottom.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

// text writes s HTML-escaped; safe in both element and quoted attribute context.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) component(c templ.Component) {
	if w.err == nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func render(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}

// Layout wraps body in the document shell: head, header with theme toggle, the
// flash status region and footer.
func Layout(chrome inkwell.Chrome, returnPath string, body templ.Component) templ.Component {
	return render(func(w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>`)
		w.text(chrome.Meta.Title)
		w.raw(`</title>`)
		if chrome.Meta.Description != "" {
			w.raw(`<meta name="description" content="`)
			w.text(chrome.Meta.Description)
			w.raw(`">`)
		}
		if chrome.Meta.URL != "" {
			w.raw(`<link rel="canonical" href="`)
			w.text(chrome.Meta.URL)
			w.raw(`">`)
		}
		w.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
		w.raw(`<link rel="stylesheet" href="/public/style.css"></head>`)

		w.raw(`<body class="`)
		w.text(BodyClass(chrome.Theme))
		w.raw(`"><header class="site-header"><a class="site-title" href="/">`)
		w.text(chrome.SiteName)
		w.raw(`</a><nav><a class="cta-button" href="/create">Upload New Blog</a></nav>`)
		themeToggle(w, chrome, returnPath)
		w.raw(`</header><main class="site-main">`)
		if chrome.Flash != "" {
			w.raw(`<p class="form-status" role="status">`)
			w.text(chrome.Flash)
			w.raw(`</p>`)
		}
		w.component(body)
		w.raw(`</main><footer class="site-footer"><a href="/feed.xml">RSS</a></footer></body></html>`)
	})
}

func themeToggle(w *writer, chrome inkwell.Chrome, returnPath string) {
	dark := chrome.Theme == inkwell.ThemeDark
	label := ThemeToggleLabel(chrome.Theme)
	w.raw(`<form method="post" action="/theme"><input type="hidden" name="_csrf" value="`)
	w.text(chrome.CSRF)
	w.raw(`"><input type="hidden" name="return" value="`)
	w.text(returnPath)
	w.raw(`"><button type="submit" class="theme-toggle" data-theme-toggle aria-pressed="`)
	if dark {
		w.raw(`true`)
	} else {
		w.raw(`false`)
	}
	w.raw(`" aria-label="`)
	w.text(label)
	w.raw(`" title="`)
	w.text(label)
	w.raw(`">`)
	if dark {
		w.raw(`Light`)
	} else {
		w.raw(`Dark`)
	}
	w.raw(`</button></form>`)
}

// NotFound renders the missing post page.
func NotFound(chrome inkwell.Chrome) templ.Component {
	return Layout(chrome, "/", render(func(w *writer) {
		w.raw(`<article class="empty-state"><h1>Post not found</h1>`)
		w.raw(`<p>The post you are looking for does not exist.</p>`)
		w.raw(`<a class="cta-button" href="/">Back to all posts</a></article>`)
	}))
}

// ServerError renders the generic failure page.
func ServerError(chrome inkwell.Chrome) templ.Component {
	return Layout(chrome, "/", render(func(w *writer) {
		w.raw(`<article class="empty-state"><h1>Something went wrong</h1>`)
		w.raw(`<p>Please try again in a moment.</p></article>`)
	}))
}
