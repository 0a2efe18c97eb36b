package inkwell

// Chrome is the state every page layout needs.
type Chrome struct {
	SiteName string
	Meta     PageMeta
	Theme    Theme
	Flash    string
	CSRF     string
}

// HomePage is the listing with its active filter.
type HomePage struct {
	Chrome
	Posts      []Post
	Categories []string
	Filter     Filter
}

// ResultsLabel returns "1 post shown" or "N posts shown".
func (p HomePage) ResultsLabel() string {
	return ResultsLabel(len(p.Posts))
}

// PostPage is a single post.
type PostPage struct {
	Chrome
	Post Post
}

// CreatePage is the compose form. Status is the single status message region.
type CreatePage struct {
	Chrome
	Form    PostForm
	Token   string
	Status  string
	Accents []string
}
