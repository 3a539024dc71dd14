package client

import (
	"context"
	"fmt"
	"net/url"
)

// CommentsService reads and writes comments, which are nested under posts.
type CommentsService struct {
	client *Client
}

// List returns the comments on a post, newest first.
func (s *CommentsService) List(ctx context.Context, postSlug string) ([]Comment, error) {
	var out []Comment
	err := s.client.get(ctx, "/posts/"+url.PathEscape(postSlug)+"/comments/", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a comment to a published post. Requires a signed-in session.
func (s *CommentsService) Create(ctx context.Context, postSlug, content string) (*Comment, error) {
	var out Comment
	err := s.client.post(ctx, "/posts/"+url.PathEscape(postSlug)+"/comments/", map[string]string{
		"content": content,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentsService) Delete(ctx context.Context, postSlug string, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/posts/%s/comments/%d/", url.PathEscape(postSlug), id))
}
