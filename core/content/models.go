package content

import (
	"encoding/json"
	"time"

	"github.com/neyborhuud/huud-go/core/client"
)

// Author is the post or comment author as the backend embeds it.
type Author struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
	Neighborhood string `json:"neighborhood"`
}

// Media is one attachment on a post.
type Media struct {
	URL       string `json:"url"`
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Location is the geotag attached to a post.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Name      string  `json:"name,omitempty"`
}

// Post is a feed entry.
type Post struct {
	ID         string    `json:"id"`
	Author     Author    `json:"author"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Media      []Media   `json:"media,omitempty"`
	Location   *Location `json:"location,omitempty"`
	Visibility string    `json:"visibility,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Mentions   []string  `json:"mentions,omitempty"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Shares     int       `json:"shares"`
	Views      int       `json:"views"`
	IsLiked    bool      `json:"isLiked"`
	IsSaved    bool      `json:"isSaved"`
	IsPinned   bool      `json:"isPinned"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// Comment is one entry in a post's comment thread.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	ParentID  string    `json:"parentId,omitempty"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	IsLiked   bool      `json:"isLiked"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pagination is the listing metadata the backend returns alongside pages.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// FeedPage is one normalized page of posts.
type FeedPage struct {
	Posts      []Post
	Pagination Pagination
}

// CreatePostPayload is the input to Service.CreatePost. Media triggers a
// multipart upload; everything else goes as form fields or JSON.
type CreatePostPayload struct {
	Content    string
	Type       string
	Visibility string
	Tags       []string
	Mentions   []string
	Location   *Location
	Media      []client.File
}

// UpdatePostPayload carries the editable post fields. Nil pointers are
// left untouched on the server.
type UpdatePostPayload struct {
	Content    *string  `json:"content,omitempty"`
	Visibility *string  `json:"visibility,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// decodeFeedPage normalizes the feed body shapes the backend has shipped
// over time: posts under "content", under "data", or the body being the
// bare array itself.
func decodeFeedPage(resp *client.Response) (*FeedPage, error) {
	var body struct {
		Content    []Post     `json:"content"`
		Data       []Post     `json:"data"`
		Posts      []Post     `json:"posts"`
		Pagination Pagination `json:"pagination"`
	}
	if err := resp.Decode(&body); err != nil {
		var bare []Post
		if bareErr := resp.Decode(&bare); bareErr != nil {
			return nil, err
		}
		return &FeedPage{Posts: bare, Pagination: Pagination{Page: 1}}, nil
	}

	posts := body.Content
	if posts == nil {
		posts = body.Data
	}
	if posts == nil {
		posts = body.Posts
	}
	if posts == nil {
		posts = []Post{}
	}
	return &FeedPage{Posts: posts, Pagination: body.Pagination}, nil
}

// decodeComments normalizes the comment listing shapes.
func decodeComments(resp *client.Response) ([]Comment, Pagination, error) {
	var body struct {
		Comments   []Comment  `json:"comments"`
		Data       []Comment  `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := resp.Decode(&body); err != nil {
		var bare []Comment
		if bareErr := resp.Decode(&bare); bareErr != nil {
			return nil, Pagination{}, err
		}
		return bare, Pagination{Page: 1}, nil
	}
	comments := body.Comments
	if comments == nil {
		comments = body.Data
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, body.Pagination, nil
}

// clonePost returns a copy safe to mutate without touching cached state.
func clonePost(p Post) Post {
	cp := p
	cp.Media = append([]Media(nil), p.Media...)
	cp.Tags = append([]string(nil), p.Tags...)
	cp.Mentions = append([]string(nil), p.Mentions...)
	if p.Location != nil {
		loc := *p.Location
		cp.Location = &loc
	}
	return cp
}

// clonePage deep-copies a feed page so predictions never alias cached
// slices.
func clonePage(page *FeedPage) *FeedPage {
	cp := &FeedPage{Pagination: page.Pagination}
	cp.Posts = make([]Post, len(page.Posts))
	for i, p := range page.Posts {
		cp.Posts[i] = clonePost(p)
	}
	return cp
}

// encodeLocation renders a location for multipart form fields.
func encodeLocation(loc *Location) map[string]any {
	if loc == nil {
		return nil
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
