package blog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/blog"
	"github.com/atelier-studio/backend/internal/resource"
	"github.com/atelier-studio/backend/internal/storage"
)

// fakeRepo keeps posts newest-first in memory.
type fakeRepo struct {
	posts []*blog.Post
}

func (f *fakeRepo) Insert(_ context.Context, p *blog.Post) (*blog.Post, error) {
	p.ID = fmt.Sprintf("post-%d", len(f.posts)+1)
	f.posts = append([]*blog.Post{p}, f.posts...)
	return p, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*blog.Post, error) { return f.posts, nil }

func (f *fakeRepo) ListPage(_ context.Context, offset, limit int) ([]*blog.Post, error) {
	if offset >= len(f.posts) {
		return []*blog.Post{}, nil
	}
	end := offset + limit
	if end > len(f.posts) {
		end = len(f.posts)
	}
	return f.posts[offset:end], nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) { return len(f.posts), nil }

func (f *fakeRepo) Get(_ context.Context, id string) (*blog.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, resource.ErrNotFound
}

func (f *fakeRepo) Update(_ context.Context, id string, p *blog.Post) (*blog.Post, error) {
	for i, old := range f.posts {
		if old.ID == id {
			p.ID = id
			f.posts[i] = p
			return p, nil
		}
	}
	return nil, resource.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id string) (*blog.Post, error) {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return p, nil
		}
	}
	return nil, resource.ErrNotFound
}

func newBlogHandler(posts int) *blog.Handler {
	repo := &fakeRepo{}
	for i := 0; i < posts; i++ {
		_, _ = repo.Insert(context.Background(), &blog.Post{
			Title:       fmt.Sprintf("post %d", i+1),
			Category:    "news",
			Date:        "2026-08-01",
			Description: "body",
			ImageURL:    "https://example.com/i.png",
		})
	}
	return blog.NewHandler(blog.NewLifecycle(repo, attachment.NewResolver(discardStore{})), repo)
}

// discardStore is a blob store that accepts and forgets everything.
type discardStore struct{}

func (discardStore) Store(_ context.Context, _ io.Reader, _ int64, _, folder string, _ storage.Constraints) (storage.Object, error) {
	return storage.Object{URL: "https://cdn.test/" + folder + "/x", Key: folder + "/x"}, nil
}

func (discardStore) Delete(_ context.Context, _ string) error { return nil }

type pageEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Posts       []blog.Post `json:"posts"`
		CurrentPage int         `json:"currentPage"`
		TotalPages  int         `json:"totalPages"`
	} `json:"data"`
}

func listPage(t *testing.T, h *blog.Handler, target string) pageEnvelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env pageEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestListSecondPage(t *testing.T) {
	t.Parallel()
	h := newBlogHandler(10)

	env := listPage(t, h, "/blog?page=2")
	require.Len(t, env.Data.Posts, 4)
	require.Equal(t, 2, env.Data.CurrentPage)
	require.Equal(t, 2, env.Data.TotalPages)
}

func TestListDefaultsToFirstPage(t *testing.T) {
	t.Parallel()
	h := newBlogHandler(10)

	env := listPage(t, h, "/blog")
	require.Len(t, env.Data.Posts, 6)
	require.Equal(t, 1, env.Data.CurrentPage)
	require.Equal(t, "post 10", env.Data.Posts[0].Title, "newest post comes first")
}

func TestListPastLastPage(t *testing.T) {
	t.Parallel()
	h := newBlogHandler(10)

	env := listPage(t, h, "/blog?page=5")
	require.Empty(t, env.Data.Posts)
	require.Equal(t, 5, env.Data.CurrentPage)
	require.Equal(t, 2, env.Data.TotalPages)
}

func TestListRejectsNonsensePageValue(t *testing.T) {
	t.Parallel()
	h := newBlogHandler(3)

	env := listPage(t, h, "/blog?page=banana")
	require.Equal(t, 1, env.Data.CurrentPage)
	require.Len(t, env.Data.Posts, 3)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0, blog.TotalPages(0))
	require.Equal(t, 1, blog.TotalPages(1))
	require.Equal(t, 1, blog.TotalPages(6))
	require.Equal(t, 2, blog.TotalPages(7))
	require.Equal(t, 2, blog.TotalPages(10))
}
