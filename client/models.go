package client

import (
	"time"

	"github.com/inkwellmag/inkwell/session"
)

// UserProfile is the signed-in user's profile. It lives in the session
// package because the session store persists it; the alias keeps the whole
// SDK surface importable from this package.
type UserProfile = session.UserProfile

// Author is the embedded author object carried by posts and comments.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAuthor bool   `json:"is_author"`
}

// Category groups posts and is addressed by slug.
type Category struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
	PostsCount int       `json:"posts_count"`
}

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post is a single article.
type Post struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content,omitempty"`
	Excerpt       string     `json:"excerpt"`
	Status        PostStatus `json:"status"`
	Category      *Category  `json:"category"`
	Author        Author     `json:"author"`
	Image         string     `json:"image,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CommentsCount int        `json:"comments_count,omitempty"`
}

// Comment is a reader comment attached to a post.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	Post      int       `json:"post"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is the pagination envelope every list endpoint returns.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool { return p.Next != nil }
