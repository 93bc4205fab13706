package content

import (
	"context"
	"log/slog"
	"strings"

	"github.com/neyborhuud/huud-go/core/cache"
	"github.com/neyborhuud/huud-go/core/client"
	"github.com/neyborhuud/huud-go/core/logger"
	"github.com/neyborhuud/huud-go/core/mutation"
)

// Like optimistically marks the post liked everywhere it is cached, then
// confirms with the backend. On failure every view rolls back.
func (s *Service) Like(ctx context.Context, postID string) error {
	return s.engage(ctx, postID, "like", func(p *Post) {
		if !p.IsLiked {
			p.IsLiked = true
			p.Likes++
		}
	})
}

// Unlike reverses Like. The like count never drops below zero, even when
// the cached count is already stale.
func (s *Service) Unlike(ctx context.Context, postID string) error {
	return s.engage(ctx, postID, "unlike", func(p *Post) {
		p.IsLiked = false
		if p.Likes > 0 {
			p.Likes--
		}
	})
}

// Save optimistically bookmarks the post.
func (s *Service) Save(ctx context.Context, postID string) error {
	return s.engage(ctx, postID, "save", func(p *Post) {
		p.IsSaved = true
	})
}

// Unsave removes the bookmark.
func (s *Service) Unsave(ctx context.Context, postID string) error {
	return s.engage(ctx, postID, "unsave", func(p *Post) {
		p.IsSaved = false
	})
}

// SharePost records a share and bumps the cached share counts.
func (s *Service) SharePost(ctx context.Context, postID string) error {
	return s.engage(ctx, postID, "share", func(p *Post) {
		p.Shares++
	})
}

// engage runs one optimistic engagement action against the single-post
// entry and every cached list view.
func (s *Service) engage(ctx context.Context, postID, action string, apply func(*Post)) error {
	_, err := s.engine.Run(ctx, mutation.Mutation{
		Entity:    cache.K(ResourcePost, postID),
		Resources: listResources,
		Predict: func(tx *cache.Tx) {
			predictPost(tx, postID, apply)
		},
		Op: func(ctx context.Context) error {
			_, err := s.api.Post(ctx, postPath(postID, action), nil)
			return err
		},
	})
	if err != nil {
		s.log(ctx, slog.LevelWarn, "engagement action failed",
			logger.Error(err), logger.PostID(postID), slog.String("action", action))
	}
	return err
}

// predictPost applies a change to the post entity and to its copy inside
// every cached list page.
func predictPost(tx *cache.Tx, postID string, apply func(*Post)) {
	tx.Update(cache.K(ResourcePost, postID), func(v any) any {
		post, ok := v.(*Post)
		if !ok {
			return v
		}
		cp := clonePost(*post)
		apply(&cp)
		return &cp
	})
	for _, resource := range listResources {
		tx.UpdateResource(resource, func(_ cache.Key, v any) any {
			page, ok := v.(*FeedPage)
			if !ok {
				return v
			}
			touched := false
			for i := range page.Posts {
				if page.Posts[i].ID == postID {
					touched = true
					break
				}
			}
			if !touched {
				return v
			}
			cp := clonePage(page)
			for i := range cp.Posts {
				if cp.Posts[i].ID == postID {
					apply(&cp.Posts[i])
				}
			}
			return cp
		})
	}
}

// CreatePost publishes a new post. Attachments switch the request to
// multipart; either way the created post is prepended into every cached
// feed page once the backend confirms it.
func (s *Service) CreatePost(ctx context.Context, payload CreatePostPayload) (*Post, error) {
	created, err := s.engine.RunAppend(ctx, mutation.AppendMutation{
		Resources: listResources,
		Op: func(ctx context.Context) (any, error) {
			resp, err := s.submitPost(ctx, payload)
			if err != nil {
				return nil, err
			}
			var post Post
			if err := resp.Decode(&post); err != nil {
				return nil, err
			}
			return &post, nil
		},
		Append: func(tx *cache.Tx, created any) {
			post, ok := created.(*Post)
			if !ok {
				return
			}
			tx.Set(cache.K(ResourcePost, post.ID), post)
			// Only page 1 gets the prepend; later pages would repeat the
			// post in the concatenated view.
			for _, resource := range listResources {
				tx.UpdateResource(resource, func(key cache.Key, v any) any {
					if !firstPageKey(key) {
						return v
					}
					page, ok := v.(*FeedPage)
					if !ok {
						return v
					}
					cp := clonePage(page)
					cp.Posts = append([]Post{clonePost(*post)}, cp.Posts...)
					cp.Pagination.Total++
					return cp
				})
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return created.(*Post), nil
}

func (s *Service) submitPost(ctx context.Context, payload CreatePostPayload) (*client.Response, error) {
	if len(payload.Media) > 0 {
		fields := map[string]any{
			"content":    payload.Content,
			"type":       payload.Type,
			"visibility": payload.Visibility,
		}
		if len(payload.Tags) > 0 {
			fields["tags"] = toAnySlice(payload.Tags)
		}
		if len(payload.Mentions) > 0 {
			fields["mentions"] = toAnySlice(payload.Mentions)
		}
		if loc := encodeLocation(payload.Location); loc != nil {
			fields["location"] = loc
		}
		return s.api.Upload(ctx, "/content/posts", payload.Media, fields)
	}

	body := map[string]any{
		"content":    payload.Content,
		"type":       payload.Type,
		"visibility": payload.Visibility,
	}
	if len(payload.Tags) > 0 {
		body["tags"] = payload.Tags
	}
	if len(payload.Mentions) > 0 {
		body["mentions"] = payload.Mentions
	}
	if payload.Location != nil {
		body["location"] = payload.Location
	}
	return s.api.Post(ctx, "/content/posts", body)
}

// UpdatePost edits a post and refreshes its cached views.
func (s *Service) UpdatePost(ctx context.Context, postID string, payload UpdatePostPayload) (*Post, error) {
	resp, err := s.api.Put(ctx, postPath(postID), payload)
	if err != nil {
		return nil, err
	}
	var post Post
	if err := resp.Decode(&post); err != nil {
		return nil, err
	}
	s.cache.Set(cache.K(ResourcePost, postID), &post)
	for _, resource := range listResources {
		s.cache.InvalidateResource(resource)
	}
	return &post, nil
}

// DeletePost removes a post and drops it from the cache.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	if _, err := s.api.Delete(ctx, postPath(postID)); err != nil {
		return err
	}
	s.cache.Remove(cache.K(ResourcePost, postID))
	s.cache.Mutate(func(tx *cache.Tx) {
		for _, resource := range listResources {
			tx.UpdateResource(resource, func(_ cache.Key, v any) any {
				page, ok := v.(*FeedPage)
				if !ok {
					return v
				}
				cp := &FeedPage{Pagination: page.Pagination}
				for _, p := range page.Posts {
					if p.ID != postID {
						cp.Posts = append(cp.Posts, clonePost(p))
					}
				}
				return cp
			})
		}
	})
	for _, resource := range listResources {
		s.cache.InvalidateResource(resource)
	}
	return nil
}

// ReportPost flags a post for moderation.
func (s *Service) ReportPost(ctx context.Context, postID, reason string) error {
	_, err := s.api.Post(ctx, postPath(postID, "report"), map[string]any{"reason": reason})
	return err
}

// firstPageKey reports whether key addresses page 1 of a listing. Every
// list key ends with its page number.
func firstPageKey(key cache.Key) bool {
	params := key.Params
	if i := strings.LastIndexByte(params, ':'); i >= 0 {
		params = params[i+1:]
	}
	return params == "1"
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
