package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/inkwellmag/inkwell/internal/textutil"
)

// PostsService reads and writes articles. List endpoints return the
// standard pagination envelope; page numbers start at 1.
type PostsService struct {
	client *Client
}

// CreatePostParams are the inputs for creating a post. Status defaults to
// draft server-side when empty.
type CreatePostParams struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Excerpt    string     `json:"excerpt,omitempty"`
	CategoryID int        `json:"category_id"`
	Image      string     `json:"image,omitempty"`
	Status     PostStatus `json:"status,omitempty"`
}

// UpdatePostParams are the inputs for updating a post. Zero fields are
// omitted and left untouched.
type UpdatePostParams struct {
	Title      string     `json:"title,omitempty"`
	Content    string     `json:"content,omitempty"`
	Excerpt    string     `json:"excerpt,omitempty"`
	CategoryID int        `json:"category_id,omitempty"`
	Image      string     `json:"image,omitempty"`
	Status     PostStatus `json:"status,omitempty"`
}

// List returns published posts, newest first.
func (s *PostsService) List(ctx context.Context, page int) (Page[Post], error) {
	var out Page[Post]
	err := s.client.get(ctx, fmt.Sprintf("/posts/?page=%d", pageOrFirst(page)), &out)
	return out, err
}

// Get returns a single post by slug.
func (s *PostsService) Get(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := s.client.get(ctx, "/posts/"+url.PathEscape(slug)+"/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByCategory returns published posts in the given category.
func (s *PostsService) ByCategory(ctx context.Context, categorySlug string, page int) (Page[Post], error) {
	var out Page[Post]
	path := fmt.Sprintf("/posts/category/%s/?page=%d", url.PathEscape(categorySlug), pageOrFirst(page))
	err := s.client.get(ctx, path, &out)
	return out, err
}

// ByAuthor returns published posts written by the given author.
func (s *PostsService) ByAuthor(ctx context.Context, username string, page int) (Page[Post], error) {
	var out Page[Post]
	path := fmt.Sprintf("/posts/author/%s/?page=%d", url.PathEscape(username), pageOrFirst(page))
	err := s.client.get(ctx, path, &out)
	return out, err
}

// Search returns published posts matching query in title, content, or
// excerpt.
func (s *PostsService) Search(ctx context.Context, query string, page int) (Page[Post], error) {
	var out Page[Post]
	path := fmt.Sprintf("/posts/?search=%s&page=%d",
		url.QueryEscape(textutil.Normalize(query)), pageOrFirst(page))
	err := s.client.get(ctx, path, &out)
	return out, err
}

// Mine returns the signed-in author's own posts, drafts included.
func (s *PostsService) Mine(ctx context.Context, page int) (Page[Post], error) {
	var out Page[Post]
	err := s.client.get(ctx, fmt.Sprintf("/posts/my-posts/?page=%d", pageOrFirst(page)), &out)
	return out, err
}

// Create publishes or drafts a new post. Requires an author account.
func (s *PostsService) Create(ctx context.Context, p CreatePostParams) (*Post, error) {
	var out Post
	if err := s.client.post(ctx, "/posts/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes an existing post. Only the owner may update it.
func (s *PostsService) Update(ctx context.Context, slug string, p UpdatePostParams) (*Post, error) {
	var out Post
	if err := s.client.put(ctx, "/posts/"+url.PathEscape(slug)+"/", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a post. Only the owner may delete it.
func (s *PostsService) Delete(ctx context.Context, slug string) error {
	return s.client.delete(ctx, "/posts/"+url.PathEscape(slug)+"/")
}

func pageOrFirst(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
