package views

import (
	"encoding/json"
	"net/url"

	"github.com/eringen/inkwell"
)

// BodyClass returns the <body> class for a theme.
func BodyClass(t inkwell.Theme) string {
	if t == inkwell.ThemeDark {
		return "dark-mode"
	}
	return ""
}

// ThemeToggleLabel describes what the toggle will do.
func ThemeToggleLabel(t inkwell.Theme) string {
	if t == inkwell.ThemeDark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}

// AccentOf returns the card accent, defaulting to green.
func AccentOf(p inkwell.Post) string {
	if p.Accent == "" {
		return inkwell.DefaultAccent
	}
	return p.Accent
}

// HomeReturnPath rebuilds the listing URL for the active filter.
func HomeReturnPath(f inkwell.Filter) string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	if f.Sort != "" && f.Sort != inkwell.SortNewest {
		q.Set("sort", f.Sort)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(siteName string, meta inkwell.PageMeta, post inkwell.Post) string {
	data := map[string]interface{}{
		"@context":       "https://schema.org",
		"@type":          "BlogPosting",
		"headline":       post.Title,
		"description":    post.Excerpt,
		"datePublished":  post.CreatedAt,
		"articleSection": post.Category,
		"url":            meta.URL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  siteName,
		},
	}
	if post.CreatedAt == "" {
		data["datePublished"] = post.Date
	}
	if post.Image != "" && !inkwell.IsDataURL(post.Image) {
		data["image"] = post.Image
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
