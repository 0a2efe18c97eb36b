package inkwell

// Post is a published blog post. The JSON layout matches the stored posts slot.
type Post struct {
	ID         int64  `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Excerpt    string `json:"excerpt" yaml:"excerpt"`
	Category   string `json:"category" yaml:"category"`
	Date       string `json:"date" yaml:"date"`
	ReadTime   string `json:"readTime" yaml:"readTime"`
	Image      string `json:"image" yaml:"image"`
	Accent     string `json:"accent" yaml:"accent"`
	Content    string `json:"content" yaml:"content"`
	CreatedAt  string `json:"createdAt,omitempty" yaml:"createdAt"`
	IsUserPost bool   `json:"isUserPost,omitempty" yaml:"-"`
}

// DefaultAccent is applied to posts without an accent.
const DefaultAccent = "green"

// Accents is the fixed accent palette.
var Accents = []string{"green", "blue", "purple", "coral", "yellow", "mint"}

// IsAccent reports whether a is part of the palette.
func IsAccent(a string) bool {
	for _, v := range Accents {
		if v == a {
			return true
		}
	}
	return false
}

// DefaultImage is the cover used when a post has neither an upload nor an image URL.
const DefaultImage = "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=1200&h=700&fit=crop"

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Sort orders accepted by Filter.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// Filter narrows and orders the post listing.
type Filter struct {
	Search   string // case-insensitive match on title, excerpt, category
	Category string // "" or "all" disables the filter
	Sort     string // newest (default), oldest, title
}

// PageMeta carries per-page metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string
}
