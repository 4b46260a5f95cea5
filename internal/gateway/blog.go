package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BlogPost is one marketing article.
type BlogPost struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Content     string    `json:"content,omitempty"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// BlogPage is one page of blog listings.
type BlogPage struct {
	Items      []BlogPost `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// BlogPosts fetches one page of articles.
func (c *Client) BlogPosts(ctx context.Context, page, limit int) (*BlogPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var payload BlogPage
	path := "/api/blogs?" + query.Encode()
	if err := c.call(ctx, http.MethodGet, path, "blog.list", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// BlogPostByID fetches one article with full content.
func (c *Client) BlogPostByID(ctx context.Context, id int64) (*BlogPost, error) {
	var payload BlogPost
	path := fmt.Sprintf("/api/blogs/%d", id)
	if err := c.call(ctx, http.MethodGet, path, "blog.detail", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
