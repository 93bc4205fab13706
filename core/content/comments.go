package content

import (
	"context"
	"strconv"

	"github.com/neyborhuud/huud-go/core/cache"
	"github.com/neyborhuud/huud-go/core/mutation"
)

// Comments returns one page of a post's comment thread.
func (s *Service) Comments(ctx context.Context, postID string, page, limit int) ([]Comment, Pagination, error) {
	resp, err := s.api.Get(ctx, postPath(postID, "comments"), pageQuery(page, limit))
	if err != nil {
		return nil, Pagination{}, err
	}
	comments, pagination, err := decodeComments(resp)
	if err != nil {
		return nil, Pagination{}, err
	}
	s.cache.Set(cache.K(ResourceComments, postID, strconv.Itoa(page)), comments)
	return comments, pagination, nil
}

// CreateComment posts a comment (or a reply when parentID is set). The
// confirmed comment is appended into the cached thread and the post's
// comment count is bumped in every cached view.
func (s *Service) CreateComment(ctx context.Context, postID, text, parentID string) (*Comment, error) {
	body := map[string]any{"content": text}
	if parentID != "" {
		body["parentId"] = parentID
	}

	created, err := s.engine.RunAppend(ctx, mutation.AppendMutation{
		Resources: []string{ResourceComments},
		Op: func(ctx context.Context) (any, error) {
			resp, err := s.api.Post(ctx, postPath(postID, "comments"), body)
			if err != nil {
				return nil, err
			}
			var comment Comment
			if err := resp.Decode(&comment); err != nil {
				return nil, err
			}
			if comment.PostID == "" {
				comment.PostID = postID
			}
			return &comment, nil
		},
		Append: func(tx *cache.Tx, created any) {
			comment, ok := created.(*Comment)
			if !ok {
				return
			}
			tx.UpdateResource(ResourceComments, func(key cache.Key, v any) any {
				if key.FirstParam() != postID {
					return v
				}
				thread, ok := v.([]Comment)
				if !ok {
					return v
				}
				return append(append([]Comment(nil), thread...), *comment)
			})
			predictPost(tx, postID, func(p *Post) {
				p.Comments++
			})
		},
	})
	if err != nil {
		return nil, err
	}
	return created.(*Comment), nil
}

// LikeComment optimistically toggles a like on one comment in the cached
// thread.
func (s *Service) LikeComment(ctx context.Context, postID, commentID string) error {
	_, err := s.engine.Run(ctx, mutation.Mutation{
		Entity:    cache.K(ResourceComments, postID),
		Resources: []string{ResourceComments},
		Predict: func(tx *cache.Tx) {
			updateComment(tx, postID, commentID, func(c *Comment) {
				if !c.IsLiked {
					c.IsLiked = true
					c.Likes++
				}
			})
		},
		Op: func(ctx context.Context) error {
			_, err := s.api.Post(ctx, postPath(postID, "comments", commentID, "like"), nil)
			return err
		},
	})
	return err
}

// DeleteComment removes a comment and decrements the cached comment
// counts.
func (s *Service) DeleteComment(ctx context.Context, postID, commentID string) error {
	if _, err := s.api.Delete(ctx, postPath(postID, "comments", commentID)); err != nil {
		return err
	}
	s.cache.Mutate(func(tx *cache.Tx) {
		tx.UpdateResource(ResourceComments, func(key cache.Key, v any) any {
			if key.FirstParam() != postID {
				return v
			}
			thread, ok := v.([]Comment)
			if !ok {
				return v
			}
			out := make([]Comment, 0, len(thread))
			for _, c := range thread {
				if c.ID != commentID {
					out = append(out, c)
				}
			}
			return out
		})
		predictPost(tx, postID, func(p *Post) {
			if p.Comments > 0 {
				p.Comments--
			}
		})
	})
	return nil
}

// updateComment rewrites one comment across every cached page of the
// post's thread.
func updateComment(tx *cache.Tx, postID, commentID string, apply func(*Comment)) {
	tx.UpdateResource(ResourceComments, func(key cache.Key, v any) any {
		if key.FirstParam() != postID {
			return v
		}
		thread, ok := v.([]Comment)
		if !ok {
			return v
		}
		out := append([]Comment(nil), thread...)
		for i := range out {
			if out[i].ID == commentID {
				apply(&out[i])
			}
		}
		return out
	})
}
