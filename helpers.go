package inkwell

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DisplayDateLayout is the layout of Post.Date, e.g. "Feb 18, 2026".
const DisplayDateLayout = "Jan 2, 2006"

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

const wordsPerMinute = 200

// FormatDate returns the display date for t.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatISO returns t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// EstimateReadTime returns a "N min read" label for sanitized markup.
func EstimateReadTime(markup string) string {
	words := 0
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup)); err == nil {
		words = len(strings.Fields(doc.Find("body").Text()))
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// PostPath returns the detail page path for a post id.
func PostPath(id int64) string {
	return "/post?id=" + strconv.FormatInt(id, 10)
}

// PostURL returns the absolute detail page URL for a post id.
func PostURL(base string, id int64) string {
	return strings.TrimRight(base, "/") + PostPath(id)
}

// ResultsLabel formats the listing count.
func ResultsLabel(n int) string {
	suffix := "posts"
	if n == 1 {
		suffix = "post"
	}
	return fmt.Sprintf("%d %s shown", n, suffix)
}

// IsDataURL reports whether s is an inline data: URL rather than a link.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}
