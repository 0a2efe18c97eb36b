package inkwell

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PostIndex is the in-memory list of every post (seeds and stored posts) that the
// pages render from. It only changes on Reload.
type PostIndex struct {
	mu    sync.RWMutex
	posts []Post
	repo  *PostRepository
	seeds []Post
}

// NewPostIndex creates an empty index; call Reload to populate it.
func NewPostIndex(repo *PostRepository, seeds []Post) *PostIndex {
	return &PostIndex{repo: repo, seeds: seeds}
}

// Reload re-reads stored posts and rebuilds the merged list.
func (x *PostIndex) Reload(ctx context.Context) error {
	uploaded, err := x.repo.Uploaded(ctx)
	if err != nil {
		return err
	}
	merged := MergePosts(x.seeds, uploaded)
	x.mu.Lock()
	x.posts = merged
	x.mu.Unlock()
	return nil
}

// All returns every post in merge order.
func (x *PostIndex) All() []Post {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]Post(nil), x.posts...)
}

// Get returns the post with the given id.
func (x *PostIndex) Get(id int64) (Post, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, p := range x.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Categories returns the distinct categories in collation order.
func (x *PostIndex) Categories() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	set := make(map[string]struct{})
	var out []string
	for _, p := range x.posts {
		if _, ok := set[p.Category]; ok {
			continue
		}
		set[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i], out[j]) < 0
	})
	return out
}

// Query filters and sorts the indexed posts.
func (x *PostIndex) Query(f Filter) []Post {
	return FilterPosts(x.All(), f)
}

// MergePosts combines seed and stored posts, de-duplicated by id. A later post
// with an existing id replaces the earlier one in the earlier one's position, so a
// stored post can override a seed. Missing accents default to green.
func MergePosts(seeds, uploaded []Post) []Post {
	pos := make(map[int64]int)
	var out []Post
	for _, list := range [][]Post{seeds, uploaded} {
		for _, p := range list {
			if p.Accent == "" {
				p.Accent = DefaultAccent
			}
			if i, ok := pos[p.ID]; ok {
				out[i] = p
				continue
			}
			pos[p.ID] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// FilterPosts applies f to posts and returns a new, stably sorted slice.
func FilterPosts(posts []Post, f Filter) []Post {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	var out []Post
	for _, p := range posts {
		if f.Category != "" && f.Category != "all" && p.Category != f.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Excerpt), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return postTime(out[i]).Before(postTime(out[j]))
		})
	case SortTitle:
		c := newCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return postTime(out[i]).After(postTime(out[j]))
		})
	}
	return out
}

// postTime is the creation time, falling back to the display date. Unparseable
// values sort as the zero time.
func postTime(p Post) time.Time {
	if p.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			return t
		}
	}
	if t, err := time.Parse(DisplayDateLayout, p.Date); err == nil {
		return t
	}
	return time.Time{}
}

// newCollator returns a collator for titles and categories. Collators are not safe
// for concurrent use, so each caller gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
