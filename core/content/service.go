package content

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/neyborhuud/huud-go/core/apierr"
	"github.com/neyborhuud/huud-go/core/cache"
	"github.com/neyborhuud/huud-go/core/client"
	"github.com/neyborhuud/huud-go/core/feed"
	"github.com/neyborhuud/huud-go/core/logger"
	"github.com/neyborhuud/huud-go/core/mutation"
)

// Cache resources owned by this package.
const (
	ResourceFeed     = "feed"
	ResourcePosts    = "posts"
	ResourcePost     = "post"
	ResourceSaved    = "savedPosts"
	ResourceUser     = "userPosts"
	ResourceComments = "comments"
)

// listResources are every cached view that can contain a post.
var listResources = []string{ResourceFeed, ResourcePosts, ResourceSaved, ResourceUser}

var (
	// ErrNilClient is returned by NewService without an API client.
	ErrNilClient = errors.New("content service requires a client")
	// ErrNilCache is returned by NewService without a cache.
	ErrNilCache = errors.New("content service requires a cache")
	// ErrNilEngine is returned by NewService without a mutation engine.
	ErrNilEngine = errors.New("content service requires a mutation engine")
)

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger. Nil disables logging.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = log
	}
}

// Service is the posts, feed, and comments API surface.
type Service struct {
	api    *client.Client
	cache  *cache.Cache
	engine *mutation.Engine
	logger *slog.Logger
}

// NewService creates a content service over api, caching reads in store
// and running engagement actions through engine.
func NewService(api *client.Client, store *cache.Cache, engine *mutation.Engine, opts ...ServiceOption) (*Service, error) {
	if api == nil {
		return nil, ErrNilClient
	}
	if store == nil {
		return nil, ErrNilCache
	}
	if engine == nil {
		return nil, ErrNilEngine
	}
	s := &Service{api: api, cache: store, engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Feed returns one page of the location-aware feed. When the feed route
// is missing or the backend fails (404, 500, 502, 503) it falls back to
// the neighborhood post listing so the timeline stays usable.
func (s *Service) Feed(ctx context.Context, lat, lng float64, page, limit int) (*FeedPage, error) {
	query := pageQuery(page, limit)
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	resp, err := s.api.Get(ctx, "/feed", query)
	if err != nil {
		if !feedFallback(err) {
			return nil, err
		}
		s.log(ctx, slog.LevelWarn, "feed endpoint unavailable, falling back to posts",
			logger.Error(err), logger.Page(page))

		fallback := pageQuery(page, limit)
		fallback.Set("filter", "neighborhood")
		resp, err = s.api.Get(ctx, "/content/posts", fallback)
		if err != nil {
			return nil, err
		}
	}

	result, err := decodeFeedPage(resp)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.K(ResourceFeed, strconv.Itoa(page)), result)
	return result, nil
}

// Posts returns one page of the post listing. An empty filter lists
// everything visible to the caller.
func (s *Service) Posts(ctx context.Context, page, limit int, filter string) (*FeedPage, error) {
	query := pageQuery(page, limit)
	if filter != "" {
		query.Set("filter", filter)
	}
	resp, err := s.api.Get(ctx, "/content/posts", query)
	if err != nil {
		return nil, err
	}
	result, err := decodeFeedPage(resp)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.K(ResourcePosts, filter, strconv.Itoa(page)), result)
	return result, nil
}

// Post returns a single post by id.
func (s *Service) Post(ctx context.Context, id string) (*Post, error) {
	resp, err := s.api.Get(ctx, "/content/posts/"+id, nil)
	if err != nil {
		return nil, err
	}
	var post Post
	if err := resp.Decode(&post); err != nil {
		return nil, err
	}
	s.cache.Set(cache.K(ResourcePost, id), &post)
	return &post, nil
}

// UserPosts returns one page of a user's posts.
func (s *Service) UserPosts(ctx context.Context, userID string, page, limit int) (*FeedPage, error) {
	resp, err := s.api.Get(ctx, "/content/posts/user/"+userID, pageQuery(page, limit))
	if err != nil {
		return nil, err
	}
	result, err := decodeFeedPage(resp)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.K(ResourceUser, userID, strconv.Itoa(page)), result)
	return result, nil
}

// SavedPosts returns one page of the caller's saved posts.
func (s *Service) SavedPosts(ctx context.Context, page, limit int) (*FeedPage, error) {
	resp, err := s.api.Get(ctx, "/content/posts/saved", pageQuery(page, limit))
	if err != nil {
		return nil, err
	}
	result, err := decodeFeedPage(resp)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.K(ResourceSaved, strconv.Itoa(page)), result)
	return result, nil
}

// FeedCursor returns an infinite-scroll cursor over Feed, deduplicated
// by post id.
func (s *Service) FeedCursor(lat, lng float64, opts ...feed.Option) (*feed.Cursor[Post], error) {
	fetch := func(ctx context.Context, page, limit int) (feed.Page[Post], error) {
		result, err := s.Feed(ctx, lat, lng, page, limit)
		if err != nil {
			return feed.Page[Post]{}, err
		}
		return feed.Page[Post]{Items: result.Posts, HasMore: result.Pagination.HasMore}, nil
	}
	return feed.NewCursor(fetch, func(p Post) string { return p.ID }, opts...)
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}

// feedFallback reports whether a feed error should trigger the post
// listing fallback.
func feedFallback(err error) bool {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Status {
	case 404, 500, 502, 503:
		return true
	}
	return false
}

func postPath(id string, parts ...string) string {
	path := "/content/posts/" + id
	for _, p := range parts {
		path += "/" + p
	}
	return path
}
