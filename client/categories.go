package client

import (
	"context"
	"net/url"
)

// CategoriesService reads the category taxonomy.
type CategoriesService struct {
	client *Client
}

// List returns all categories.
func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.client.get(ctx, "/categories/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single category by slug.
func (s *CategoriesService) Get(ctx context.Context, slug string) (*Category, error) {
	var out Category
	if err := s.client.get(ctx, "/categories/"+url.PathEscape(slug)+"/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
