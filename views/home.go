package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/inkwell"
)

var sortOptions = []struct{ value, label string }{
	{inkwell.SortNewest, "Newest first"},
	{inkwell.SortOldest, "Oldest first"},
	{inkwell.SortTitle, "Title A-Z"},
}

// Home renders the filter bar, result count and post grid.
func Home(page inkwell.HomePage) templ.Component {
	return Layout(page.Chrome, HomeReturnPath(page.Filter), render(func(w *writer) {
		w.raw(`<form class="filters" method="get" action="/" role="search">`)
		w.raw(`<input id="searchInput" type="search" name="q" placeholder="Search posts" value="`)
		w.text(page.Filter.Search)
		w.raw(`">`)

		w.raw(`<select id="categoryFilter" name="category">`)
		option(w, "all", "All categories", page.Filter.Category == "all" || page.Filter.Category == "")
		for _, cat := range page.Categories {
			option(w, cat, cat, cat == page.Filter.Category)
		}
		w.raw(`</select>`)

		w.raw(`<select id="sortSelect" name="sort">`)
		for _, o := range sortOptions {
			option(w, o.value, o.label, o.value == page.Filter.Sort)
		}
		w.raw(`</select>`)
		w.raw(`<button type="submit">Apply</button><a id="clearFilters" class="cta-button" href="/">Clear</a></form>`)

		w.raw(`<p id="resultsCount" class="results-count">`)
		w.text(page.ResultsLabel())
		w.raw(`</p><section id="postsGrid" class="posts-grid">`)
		if len(page.Posts) == 0 {
			w.raw(`<article class="empty-state"><h2>No posts found</h2>`)
			w.raw(`<p>Try adjusting your search or upload a new blog post.</p>`)
			w.raw(`<a href="/create" class="cta-button">Upload New Blog</a></article>`)
		}
		for _, p := range page.Posts {
			card(w, p)
		}
		w.raw(`</section>`)
	}))
}

func option(w *writer, value, label string, selected bool) {
	w.raw(`<option value="`)
	w.text(value)
	if selected {
		w.raw(`" selected>`)
	} else {
		w.raw(`">`)
	}
	w.text(label)
	w.raw(`</option>`)
}

func card(w *writer, p inkwell.Post) {
	w.raw(`<a class="blog-card" data-accent="`)
	w.text(AccentOf(p))
	w.raw(`" data-id="`)
	w.raw(strconv.FormatInt(p.ID, 10))
	w.raw(`" href="`)
	w.text(inkwell.PostPath(p.ID))
	w.raw(`" aria-label="`)
	w.text("Read post: " + p.Title)
	w.raw(`"><div class="card-image"><img src="`)
	w.text(p.Image)
	w.raw(`" alt="`)
	w.text(p.Title)
	w.raw(`" loading="lazy"></div><div class="card-content"><span class="card-category">`)
	w.text(p.Category)
	w.raw(`</span><h2 class="card-title">`)
	w.text(p.Title)
	w.raw(`</h2><p class="card-excerpt">`)
	w.text(p.Excerpt)
	w.raw(`</p><div class="card-meta"><span class="card-date">`)
	w.text(p.Date)
	w.raw(`</span><span class="card-read-time">`)
	w.text(p.ReadTime)
	w.raw(`</span></div></div></a>`)
}
