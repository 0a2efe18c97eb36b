package inkwell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// PostRepository reads and writes the user's posts, stored newest-first as a JSON
// array in the posts slot.
type PostRepository struct {
	slots SlotStore
	log   zerolog.Logger
	mu    sync.Mutex
}

// NewPostRepository creates a repository over slots.
func NewPostRepository(slots SlotStore, log zerolog.Logger) *PostRepository {
	return &PostRepository{slots: slots, log: log}
}

// Uploaded returns the stored posts, newest first. An absent or malformed slot
// yields no posts; only storage I/O failures are returned.
func (r *PostRepository) Uploaded(ctx context.Context) ([]Post, error) {
	raw, ok, err := r.slots.GetItem(ctx, PostsSlot)
	if err != nil {
		return nil, fmt.Errorf("read posts slot: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	posts, err := decodePosts(raw)
	if err != nil {
		r.log.Warn().Err(err).Str("slot", PostsSlot).Msg("could not load uploaded posts")
		return nil, nil
	}
	return posts, nil
}

// Update runs fn over the stored posts and writes back its result. Updates are
// serialized so concurrent publishes cannot drop each other's posts.
func (r *PostRepository) Update(ctx context.Context, fn func([]Post) ([]Post, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.Uploaded(ctx)
	if err != nil {
		return err
	}
	next, err := fn(posts)
	if err != nil {
		return err
	}
	data, err := encodePosts(next)
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := r.slots.SetItem(ctx, PostsSlot, data); err != nil {
		return fmt.Errorf("write posts slot: %w", err)
	}
	return nil
}

// Prepend stores p in front of the existing posts.
func (r *PostRepository) Prepend(ctx context.Context, p Post) error {
	return r.Update(ctx, func(posts []Post) ([]Post, error) {
		return append([]Post{p}, posts...), nil
	})
}

func decodePosts(raw string) ([]Post, error) {
	var posts []Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageParse, err)
	}
	if posts == nil {
		return nil, fmt.Errorf("%w: not an array", ErrStorageParse)
	}
	return posts, nil
}

func encodePosts(posts []Post) (string, error) {
	if posts == nil {
		posts = []Post{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(posts); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func maxID(posts []Post) int64 {
	var id int64
	for _, p := range posts {
		if p.ID > id {
			id = p.ID
		}
	}
	return id
}
