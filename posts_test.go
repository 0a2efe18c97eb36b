package inkwell

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func newTestRepo(t *testing.T) (*PostRepository, *Store) {
	t.Helper()
	s := newTestStore(t)
	return NewPostRepository(s, zerolog.New(io.Discard)), s
}

func TestUploadedEmptySlot(t *testing.T) {
	repo, _ := newTestRepo(t)
	posts, err := repo.Uploaded(context.Background())
	if err != nil {
		t.Fatalf("Uploaded: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0", len(posts))
	}
}

func TestUploadedMalformedSlot(t *testing.T) {
	tests := []string{`not json`, `{"id":1}`, `null`, `[{"id":"x"}]`}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			ctx := context.Background()
			var logs strings.Builder
			s := newTestStore(t)
			repo := NewPostRepository(s, zerolog.New(&logs))
			if err := s.SetItem(ctx, PostsSlot, raw); err != nil {
				t.Fatalf("SetItem: %v", err)
			}
			posts, err := repo.Uploaded(ctx)
			if err != nil {
				t.Fatalf("Uploaded: %v", err)
			}
			if len(posts) != 0 {
				t.Errorf("len(posts) = %d, want 0", len(posts))
			}
			if !strings.Contains(logs.String(), "could not load uploaded posts") {
				t.Errorf("expected a warning log, got %q", logs.String())
			}
		})
	}
}

func TestPrependKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, s := newTestRepo(t)

	for _, id := range []int64{1, 2, 3} {
		if err := repo.Prepend(ctx, Post{ID: id, Title: "p", Content: "<p>a & b</p>"}); err != nil {
			t.Fatalf("Prepend(%d): %v", id, err)
		}
	}
	posts, err := repo.Uploaded(ctx)
	if err != nil {
		t.Fatalf("Uploaded: %v", err)
	}
	var ids []int64
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[2] != 1 {
		t.Errorf("ids = %v, want [3 2 1]", ids)
	}

	raw, _, _ := s.GetItem(ctx, PostsSlot)
	if !strings.Contains(raw, `"content":"<p>a & b</p>"`) {
		t.Errorf("stored json escapes markup: %s", raw)
	}
}

func TestUpdateErrorLeavesSlotUntouched(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	if err := repo.Prepend(ctx, Post{ID: 1}); err != nil {
		t.Fatalf("Prepend: %v", err)
	}

	boom := errors.New("boom")
	err := repo.Update(ctx, func(posts []Post) ([]Post, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}
	posts, _ := repo.Uploaded(ctx)
	if len(posts) != 1 {
		t.Errorf("len(posts) = %d, want 1", len(posts))
	}
}

func TestConcurrentPrepends(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := repo.Prepend(ctx, Post{ID: id}); err != nil {
				t.Errorf("Prepend(%d): %v", id, err)
			}
		}(int64(i))
	}
	wg.Wait()

	posts, err := repo.Uploaded(ctx)
	if err != nil {
		t.Fatalf("Uploaded: %v", err)
	}
	if len(posts) != 10 {
		t.Errorf("len(posts) = %d, want 10", len(posts))
	}
}
