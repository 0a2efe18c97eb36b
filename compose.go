package inkwell

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/inkwell/sanitize"
)

// PostForm is a compose submission. ImageFile holds the uploaded cover already
// read into a data URL; Content is the raw editor markup.
type PostForm struct {
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Category  string `json:"category"`
	ReadTime  string `json:"readTime"`
	Accent    string `json:"accent"`
	ImageURL  string `json:"imageUrl"`
	ImageFile string `json:"imageFile"`
	Content   string `json:"content"`
	Token     string `json:"-"`
}

// formFieldOrder fixes which field error is reported first.
var formFieldOrder = []string{"title", "excerpt", "category", "readTime", "accent", "imageUrl"}

// normalize strips markup from the single-line fields.
func (f *PostForm) normalize() {
	f.Title = sanitize.PlainText(f.Title)
	f.Excerpt = sanitize.PlainText(f.Excerpt)
	f.Category = sanitize.PlainText(f.Category)
	f.ReadTime = sanitize.PlainText(f.ReadTime)
	f.Accent = strings.ToLower(strings.TrimSpace(f.Accent))
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

// Validate checks the normalized form and returns the first *ValidationError.
func (f *PostForm) Validate() error {
	accents := make([]interface{}, len(Accents))
	for i, a := range Accents {
		accents[i] = a
	}
	err := validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required.Error("Please add a title."), validation.RuneLength(1, 200)),
		validation.Field(&f.Excerpt, validation.Required.Error("Please add an excerpt."), validation.RuneLength(1, 500)),
		validation.Field(&f.Category, validation.Required.Error("Please add a category."), validation.RuneLength(1, 60)),
		validation.Field(&f.ReadTime, validation.RuneLength(0, 40)),
		validation.Field(&f.Accent, validation.In(accents...).Error("Please pick an accent from the palette.")),
		validation.Field(&f.ImageURL, validation.By(safeImageURL)),
	)
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, field := range formFieldOrder {
		if fe, ok := errs[field]; ok {
			return &ValidationError{Field: field, Message: fe.Error()}
		}
	}
	return err
}

func safeImageURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" || sanitize.IsSafeImageSource(s) {
		return nil
	}
	return errors.New("Image URL must start with http://, https:// or /.")
}

// PreparePost validates form, sanitizes its content and assembles the post to
// store. now provides the id and timestamps; ids never go below lastID+1.
func PreparePost(form PostForm, now time.Time, lastID int64) (Post, error) {
	form.normalize()
	if err := form.Validate(); err != nil {
		return Post{}, err
	}

	content, err := sanitize.SanitizeHTML(form.Content)
	if err != nil {
		return Post{}, err
	}
	if !sanitize.HasVisibleContent(content) {
		return Post{}, ErrEmptyContent
	}

	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	image := form.ImageFile
	if image == "" {
		image = form.ImageURL
	}
	if image == "" {
		image = DefaultImage
	}
	accent := form.Accent
	if accent == "" {
		accent = DefaultAccent
	}
	readTime := form.ReadTime
	if readTime == "" {
		readTime = EstimateReadTime(content)
	}

	return Post{
		ID:         id,
		Title:      form.Title,
		Excerpt:    form.Excerpt,
		Category:   form.Category,
		Date:       FormatDate(now),
		ReadTime:   readTime,
		Image:      image,
		Accent:     accent,
		Content:    content,
		CreatedAt:  FormatISO(now),
		IsUserPost: true,
	}, nil
}

// Publisher turns submissions into stored posts and refreshes the index.
type Publisher struct {
	repo  *PostRepository
	index *PostIndex
	now   func() time.Time
	log   zerolog.Logger
}

// NewPublisher creates a Publisher. A nil now uses time.Now.
func NewPublisher(repo *PostRepository, index *PostIndex, now func() time.Time, log zerolog.Logger) *Publisher {
	if now == nil {
		now = time.Now
	}
	return &Publisher{repo: repo, index: index, now: now, log: log}
}

// Publish prepares the post, prepends it to the stored posts and reloads the index.
func (p *Publisher) Publish(ctx context.Context, form PostForm) (Post, error) {
	var post Post
	err := p.repo.Update(ctx, func(posts []Post) ([]Post, error) {
		prepared, err := PreparePost(form, p.now(), maxID(posts))
		if err != nil {
			return nil, err
		}
		post = prepared
		return append([]Post{post}, posts...), nil
	})
	if err != nil {
		return Post{}, err
	}
	if err := p.index.Reload(ctx); err != nil {
		p.log.Error().Err(err).Msg("reload post index after publish")
	}
	p.log.Info().Int64("id", post.ID).Str("category", post.Category).Msg("post published")
	return post, nil
}
