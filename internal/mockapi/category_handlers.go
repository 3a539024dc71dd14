package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellmag/inkwell/client"
)

// AddCategory creates a category directly, for seeding and test setup.
func (s *Server) AddCategory(name string) client.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCatID++
	cat := client.Category{
		ID:        s.nextCatID,
		Name:      name,
		Slug:      slugify(name),
		CreatedAt: time.Now().UTC(),
	}
	s.categories = append(s.categories, cat)
	return cat
}

// withPostCounts fills posts_count from the published posts in each
// category.
func (s *Server) withPostCounts(cat client.Category) client.Category {
	for _, p := range s.posts {
		if p.Status == client.StatusPublished && p.Category != nil && p.Category.ID == cat.ID {
			cat.PostsCount++
		}
	}
	return cat
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]client.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		out = append(out, s.withPostCounts(cat))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := chi.URLParam(r, "slug")
	for _, cat := range s.categories {
		if cat.Slug == slug {
			writeJSON(w, http.StatusOK, s.withPostCounts(cat))
			return
		}
	}
	writeNotFound(w)
}
