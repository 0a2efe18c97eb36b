package inkwell

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func ids(posts []Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestMergePostsOverridesInPlace(t *testing.T) {
	seeds := []Post{{ID: 1, Title: "seed one"}, {ID: 2, Title: "seed two"}}
	uploaded := []Post{{ID: 3, Title: "new"}, {ID: 1, Title: "override", Accent: "blue"}}

	got := MergePosts(seeds, uploaded)
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
	if got[0].Title != "override" || got[0].Accent != "blue" {
		t.Errorf("post 1 = %+v, want the stored override", got[0])
	}
	if got[1].Accent != DefaultAccent {
		t.Errorf("post 2 accent = %q, want %q", got[1].Accent, DefaultAccent)
	}
	if seeds[1].Accent != "" {
		t.Errorf("MergePosts mutated its input")
	}
}

func TestFilterPosts(t *testing.T) {
	posts := []Post{
		{ID: 1, Title: "Gamma", Excerpt: "About Go", Category: "A", CreatedAt: "2026-01-03T10:00:00.000Z"},
		{ID: 2, Title: "alpha", Excerpt: "Nothing", Category: "B", Date: "Jan 1, 2026"},
		{ID: 3, Title: "Beta", Excerpt: "More", Category: "A", CreatedAt: "2026-01-02T10:00:00.000Z"},
		{ID: 4, Title: "Delta", Excerpt: "Tie", Category: "A", CreatedAt: "2026-01-02T10:00:00.000Z"},
	}
	tests := []struct {
		name string
		f    Filter
		want []int64
	}{
		{"default newest", Filter{}, []int64{1, 3, 4, 2}},
		{"oldest keeps ties stable", Filter{Sort: SortOldest}, []int64{2, 3, 4, 1}},
		{"title collation", Filter{Sort: SortTitle}, []int64{2, 3, 4, 1}},
		{"category", Filter{Category: "A"}, []int64{1, 3, 4}},
		{"category all", Filter{Category: "all", Sort: SortOldest}, []int64{2, 3, 4, 1}},
		{"search excerpt", Filter{Search: "  go "}, []int64{1}},
		{"search any field", Filter{Search: "B"}, []int64{1, 3, 2}},
		{"no match", Filter{Search: "zzz"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterPosts(posts, tt.f))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterPosts(%+v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestPostTimeUnparseableIsZero(t *testing.T) {
	if got := postTime(Post{Date: "someday"}); !got.IsZero() {
		t.Errorf("postTime = %v, want zero", got)
	}
}

func TestPostIndexReload(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	index := NewPostIndex(repo, []Post{{ID: 1, Title: "seed", Category: "Seed"}})
	if err := index.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := len(index.All()); got != 1 {
		t.Fatalf("len(All) = %d, want 1", got)
	}

	if err := repo.Prepend(ctx, Post{ID: 50, Title: "mine", Category: "Mine"}); err != nil {
		t.Fatalf("Prepend: %v", err)
	}
	if _, err := index.Get(50); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before Reload = %v, want ErrNotFound", err)
	}
	if err := index.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	p, err := index.Get(50)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Title != "mine" {
		t.Errorf("Title = %q, want %q", p.Title, "mine")
	}
	if got, want := index.Categories(), []string{"Mine", "Seed"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}
