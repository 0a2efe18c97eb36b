package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
)

// Post renders a single post. Content is stored sanitized and written as-is.
func Post(page inkwell.PostPage) templ.Component {
	p := page.Post
	return Layout(page.Chrome, inkwell.PostPath(p.ID), render(func(w *writer) {
		w.raw(`<script type="application/ld+json">`)
		w.raw(BlogPostingJsonLD(page.SiteName, page.Meta, p))
		w.raw(`</script>`)

		w.raw(`<article class="post" data-accent="`)
		w.text(AccentOf(p))
		w.raw(`"><figure class="post-hero"><img src="`)
		w.text(p.Image)
		w.raw(`" alt="`)
		w.text(p.Title)
		w.raw(`"></figure><header><span class="card-category">`)
		w.text(p.Category)
		w.raw(`</span><h1>`)
		w.text(p.Title)
		w.raw(`</h1><p class="card-meta"><span class="card-date">`)
		w.text(p.Date)
		w.raw(`</span><span class="card-read-time">`)
		w.text(p.ReadTime)
		w.raw(`</span></p></header><div class="post-body">`)
		w.component(templ.Raw(p.Content))
		w.raw(`</div><a class="cta-button" href="/">Back to all posts</a></article>`)
	}))
}
