package mockapi

import (
	"time"

	"github.com/inkwellmag/inkwell/client"
)

// Seed loads demo content: categories, a few author accounts (password
// "demo123"), published posts, and comments. Used by `inkwell demo`.
func (s *Server) Seed() {
	for _, name := range []string{
		"Architecture", "Art", "Design", "Fashion", "Food",
		"Photography", "Technology", "Travel", "Culture",
		"Lifestyle", "Music", "Science",
	} {
		s.AddCategory(name)
	}

	authors := []struct {
		username, email, first, last string
	}{
		{"sarah_chen", "sarah@example.com", "Sarah", "Chen"},
		{"marcus_wright", "marcus@example.com", "Marcus", "Wright"},
		{"elena_rodriguez", "elena@example.com", "Elena", "Rodriguez"},
	}
	for _, a := range authors {
		profile := s.AddUser(a.username, a.email, "demo123", true)
		s.mu.Lock()
		u := s.users[profile.Username]
		u.profile.FirstName = a.first
		u.profile.LastName = a.last
		s.mu.Unlock()
	}
	s.AddUser("reader", "reader@example.com", "demo123", false)

	posts := []struct {
		author, category, title, excerpt string
	}{
		{"sarah_chen", "architecture", "The Future of Minimalist Architecture",
			"How contemporary designers are reinterpreting restraint and simplicity."},
		{"sarah_chen", "design", "Typography in the Age of Screens",
			"Why typefaces built for print struggle on displays, and what replaces them."},
		{"marcus_wright", "technology", "What Quiet Software Looks Like",
			"A case for tools that stay out of the way."},
		{"marcus_wright", "travel", "Slow Trains Through the Balkans",
			"Three weeks of rail travel, border crossings, and station cafes."},
		{"elena_rodriguez", "food", "A Defense of the Long Lunch",
			"The table as the last unhurried place."},
		{"elena_rodriguez", "culture", "Archives and Their Keepers",
			"The people who decide what the future remembers."},
	}
	for i, p := range posts {
		s.seedPost(p.author, p.category, p.title, p.excerpt, time.Duration(len(posts)-i)*time.Hour)
	}

	s.seedComment("reader", "the-future-of-minimalist-architecture", "This changed how I look at my own street.")
	s.seedComment("marcus_wright", "the-future-of-minimalist-architecture", "Great survey of the field.")
	s.seedComment("reader", "a-defense-of-the-long-lunch", "Sharing this with my whole office.")
}

func (s *Server) seedPost(author, categorySlug, title, excerpt string, age time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[author]
	var cat *client.Category
	for i := range s.categories {
		if s.categories[i].Slug == categorySlug {
			cat = &s.categories[i]
			break
		}
	}

	s.nextPostID++
	created := time.Now().UTC().Add(-age)
	s.posts = append(s.posts, &post{
		Post: client.Post{
			ID:        s.nextPostID,
			Title:     title,
			Slug:      slugify(title),
			Content:   excerpt + "\n\nFull text forthcoming in the print edition.",
			Excerpt:   excerpt,
			Status:    client.StatusPublished,
			Category:  cat,
			Author:    asAuthor(u),
			CreatedAt: created,
			UpdatedAt: created,
		},
		authorName: author,
	})
}

func (s *Server) seedComment(author, postSlug, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPost(postSlug)
	if p == nil {
		return
	}
	s.nextCommentID++
	s.comments = append(s.comments, client.Comment{
		ID:        s.nextCommentID,
		Content:   content,
		Author:    asAuthor(s.users[author]),
		Post:      p.ID,
		CreatedAt: time.Now().UTC(),
	})
}
