package content_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neyborhuud/huud-go/core/cache"
	"github.com/neyborhuud/huud-go/core/client"
	"github.com/neyborhuud/huud-go/core/content"
	"github.com/neyborhuud/huud-go/core/mutation"
)

// newTestService wires a content service against srv with a fresh cache.
func newTestService(t *testing.T, srv *httptest.Server) (*content.Service, *cache.Cache) {
	t.Helper()

	api, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	store := cache.New()
	engine, err := mutation.NewEngine(store)
	require.NoError(t, err)

	svc, err := content.NewService(api, store, engine)
	require.NoError(t, err)
	return svc, store
}

func TestNewService(t *testing.T) {
	t.Parallel()

	store := cache.New()
	engine, err := mutation.NewEngine(store)
	require.NoError(t, err)
	api, err := client.New(client.Config{BaseURL: "http://localhost"})
	require.NoError(t, err)

	t.Run("requires a client", func(t *testing.T) {
		t.Parallel()
		_, err := content.NewService(nil, store, engine)
		assert.ErrorIs(t, err, content.ErrNilClient)
	})

	t.Run("requires a cache", func(t *testing.T) {
		t.Parallel()
		_, err := content.NewService(api, nil, engine)
		assert.ErrorIs(t, err, content.ErrNilCache)
	})

	t.Run("requires an engine", func(t *testing.T) {
		t.Parallel()
		_, err := content.NewService(api, store, nil)
		assert.ErrorIs(t, err, content.ErrNilEngine)
	})
}

func TestService_Feed(t *testing.T) {
	t.Parallel()

	t.Run("returns the feed page", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "6.5244", r.URL.Query().Get("lat"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			w.Write([]byte(`{"success":true,"data":{"content":[{"id":"p1","content":"hello"}],"pagination":{"page":1,"hasMore":true}}}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		svc, store := newTestService(t, srv)
		page, err := svc.Feed(context.Background(), 6.5244, 3.3792, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "p1", page.Posts[0].ID)
		assert.True(t, page.Pagination.HasMore)

		cached, ok := store.Get(cache.K(content.ResourceFeed, "1"))
		require.True(t, ok)
		assert.Same(t, page, cached)
	})

	t.Run("falls back to the post listing when the feed route is broken", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<!DOCTYPE html><html>Cannot GET /feed</html>`))
		})
		mux.HandleFunc("GET /content/posts", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "neighborhood", r.URL.Query().Get("filter"))
			w.Write([]byte(`{"success":true,"data":{"data":[{"id":"p2"}],"pagination":{"page":1,"hasMore":false}}}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		svc, _ := newTestService(t, srv)
		page, err := svc.Feed(context.Background(), 6.5244, 3.3792, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "p2", page.Posts[0].ID)
	})

	t.Run("does not fall back on client errors", func(t *testing.T) {
		t.Parallel()

		var fallbackHit bool
		mux := http.NewServeMux()
		mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token expired"}`))
		})
		mux.HandleFunc("GET /content/posts", func(w http.ResponseWriter, r *http.Request) {
			fallbackHit = true
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		svc, _ := newTestService(t, srv)
		_, err := svc.Feed(context.Background(), 6.5244, 3.3792, 1, 10)
		require.Error(t, err)
		assert.False(t, fallbackHit)
	})

	t.Run("normalizes a bare array body", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":[{"id":"p3"}]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		svc, _ := newTestService(t, srv)
		page, err := svc.Feed(context.Background(), 0, 0, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "p3", page.Posts[0].ID)
	})
}

func TestService_Post(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /content/posts/p1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"p1","likes":4,"isLiked":true}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc, store := newTestService(t, srv)
	post, err := svc.Post(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, post.Likes)
	assert.True(t, post.IsLiked)

	_, ok := store.Get(cache.K(content.ResourcePost, "p1"))
	assert.True(t, ok)
}

func TestService_FeedCursor(t *testing.T) {
	t.Parallel()

	pages := []string{
		`{"success":true,"data":{"content":[{"id":"a"},{"id":"b"}],"pagination":{"page":1,"hasMore":true}}}`,
		`{"success":true,"data":{"content":[{"id":"b"},{"id":"c"}],"pagination":{"page":2,"hasMore":false}}}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "2" {
			w.Write([]byte(pages[1]))
			return
		}
		w.Write([]byte(pages[0]))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc, _ := newTestService(t, srv)
	cursor, err := svc.FeedCursor(6.5244, 3.3792)
	require.NoError(t, err)

	first, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := cursor.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "c", second[0].ID)
	assert.False(t, cursor.HasMore())
}
